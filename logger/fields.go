package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging.
// Use these constants instead of raw strings so log queries stay stable.
const (
	// Model
	FieldStack     = "stack"
	FieldStackIdx  = "stack_index"
	FieldField     = "field"
	FieldSignature = "signature"

	// Rendering
	FieldFormat   = "format"
	FieldRenderID = "render_id"
	FieldPosition = "position"
	FieldText     = "text"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Files
	FieldFile = "file"
	FieldOp   = "op"

	// Symbol glyph of the command emitting the line
	FieldSymbol = "symbol"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Resolver struct {
//	    logger *zap.SugaredLogger
//	}
//
//	r := &Resolver{logger: logger.ComponentLogger("extract")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	stackLogger := logger.ChildLogger(base, logger.FieldStack, atom.String())
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
