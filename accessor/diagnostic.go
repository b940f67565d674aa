package accessor

import (
	"fmt"

	"github.com/teranos/resgen/resource"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic codes. RG0xxx abort a run, RG1xxx concern a single resource.
const (
	CodeInvalidContainer = "RG0001"
	CodeInvalidNamespace = "RG0002"
	CodeDuplicateKey     = "RG0003"
	CodeUnreadableSource = "RG0004"
	CodeOutputFailed     = "RG0005"
	CodeUnresolvable     = "RG1001"
	CodeCollision        = "RG1002"
	CodeUnclassifiable   = "RG1003"
)

// Diagnostic is one reportable problem, attributed to a source position
type Diagnostic struct {
	Severity Severity          `json:"severity"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Key      string            `json:"key,omitempty"`
	Position resource.Position `json:"position"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s: %s", d.Position, d.Severity, d.Code, d.Message)
}

// Sink receives diagnostics as a run produces them
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Diagnostic)

// Report calls f(d)
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Collector is a Sink that keeps every diagnostic in arrival order
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
