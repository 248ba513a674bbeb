package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Syntax errors reported by the parser
//   - E2xxx: Findings of the validation pass
type ErrorCode string

const (
	// Syntax errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected input
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unterminated construct
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1011 ErrorCode = "E1011" // Handler name mismatch

	// Validation errors (E2xxx)
	E2001 ErrorCode = "E2001" // exit repeat outside of a loop
	E2002 ErrorCode = "E2002" // Duplicate parameter name
	E2003 ErrorCode = "E2003" // Duplicate handler name
	E2004 ErrorCode = "E2004" // Global shadows parameter
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected input",
	E1003: "invalid syntax",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unterminated construct",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1011: "handler name mismatch",

	E2001: "exit repeat outside of a repeat loop",
	E2002: "duplicate parameter name",
	E2003: "duplicate handler name",
	E2004: "global shadows parameter",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "syntax"
	case '2':
		return "validation"
	default:
		return "unknown"
	}
}
