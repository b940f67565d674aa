package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across resgen.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Inputs and outputs
	FieldFile     = "file"
	FieldOutput   = "output"
	FieldLanguage = "language"
	FieldKey      = "key"
	FieldLine     = "line"
	FieldColumn   = "column"

	// Results
	FieldIdentifier = "identifier"
	FieldAccessors  = "accessors"
	FieldUnresolved = "unresolved"
	FieldCount      = "count"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError     = "error"
	FieldErrorCode = "error_code"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
