// Package errors defines the display model shared by parser and validator
// errors: error codes, formatted error blocks and spelling suggestions.
package errors

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// Format renders err with the formatter when it supports it, falling back to
// the plain error message otherwise.
func Format(f *Formatter, err error) string {
	if fe, ok := err.(FormattableError); ok {
		return f.Format(fe.ToFormatted())
	}
	return err.Error() + "\n"
}
