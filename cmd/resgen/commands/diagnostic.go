package commands

import (
	"github.com/teranos/resgen/accessor"
)

// errorDiagnostic turns a failure without its own diagnostic (a bad hook, an
// unknown language) into one so every failure is displayed the same way
func errorDiagnostic(err error) accessor.Diagnostic {
	return accessor.Diagnostic{
		Severity: accessor.SeverityError,
		Code:     accessor.CodeOutputFailed,
		Message:  err.Error(),
	}
}
