package parser

import (
	"github.com/drizzle-lingo/lingo/token"
	"github.com/rs/zerolog"
)

// Tracer observes the parser as it enters and leaves grammar rules. The rules
// reported are "script", "handler", "block", "statement", "if", "case",
// "repeat" and "expression". Leave reports whether the rule matched.
type Tracer interface {
	Enter(rule string, pos token.Position)
	Leave(rule string, pos token.Position, ok bool)
}

// LogTracer writes rule events to a zerolog logger at debug level.
type LogTracer struct {
	logger zerolog.Logger
}

// NewLogTracer returns a tracer that logs through logger.
func NewLogTracer(logger zerolog.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

func (t *LogTracer) Enter(rule string, pos token.Position) {
	t.logger.Debug().
		Str("rule", rule).
		Stringer("pos", pos).
		Msg("enter")
}

func (t *LogTracer) Leave(rule string, pos token.Position, ok bool) {
	t.logger.Debug().
		Str("rule", rule).
		Stringer("pos", pos).
		Bool("ok", ok).
		Msg("leave")
}
