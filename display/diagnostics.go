package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/resgen/accessor"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/generate"
)

// FormatDiagnostic renders d in the file(line,col): severity CODE: message form
// compilers use, colored by severity
func FormatDiagnostic(file string, d accessor.Diagnostic) string {
	location := file
	if d.Position.IsKnown() {
		location = fmt.Sprintf("%s(%d,%d)", file, d.Position.Line, d.Position.Column)
	}

	var severity string
	switch d.Severity {
	case accessor.SeverityError:
		severity = pterm.Red(string(d.Severity) + " " + d.Code)
	case accessor.SeverityWarning:
		severity = pterm.Yellow(string(d.Severity) + " " + d.Code)
	default:
		severity = string(d.Severity) + " " + d.Code
	}
	return fmt.Sprintf("%s: %s: %s", pterm.LightCyan(location), severity, d.Message)
}

// PrintReport writes the diagnostics and outcome of one generation run
func PrintReport(w io.Writer, r *generate.Report) {
	for _, d := range r.Diagnostics {
		pterm.Fprintln(w, FormatDiagnostic(r.Input, d))
	}

	switch {
	case r.Skipped == generate.SkipLocalized:
		pterm.Fprintln(w, fmt.Sprintf("%s %s %s", pterm.Gray("→"), r.Input, pterm.Gray("(localized, skipped)")))
	case r.Skipped == generate.SkipUnchanged:
		pterm.Fprintln(w, fmt.Sprintf("%s %s %s", pterm.Gray("→"), r.Input, pterm.Gray("(unchanged)")))
	case r.HasErrors():
		pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.Red("✗"), r.Input))
	default:
		summary := fmt.Sprintf("%d accessors", r.Accessors)
		if n := len(r.Unresolved); n > 0 {
			summary += ", " + pterm.Yellow(fmt.Sprintf("%d skipped", n))
		}
		pterm.Fprintln(w, fmt.Sprintf("%s %s → %s (%s)",
			pterm.LightGreen("✓"), r.Input, r.Container, summary))
		for _, path := range r.Written {
			pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Gray("wrote"), path))
		}
	}
}

// PrintCheck writes the outcome of checking one input
func PrintCheck(w io.Writer, c *generate.CheckResult) {
	if c.UpToDate {
		pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.LightGreen("✓"), c.Input))
		return
	}
	pterm.Fprintln(w, fmt.Sprintf("%s %s", pterm.Red("✗"), c.Input))
	for _, path := range c.Differences {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Yellow("differs:"), path))
	}
	for _, path := range c.Missing {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Yellow("missing:"), path))
	}
}

// PrintError writes err with any hints attached to it
func PrintError(w io.Writer, err error) {
	pterm.Fprintln(w, pterm.Red("Error: ")+err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Fprintln(w, pterm.LightCyan("Hint: ")+hint)
	}
	if details := errors.GetAllDetails(err); len(details) > 0 {
		pterm.Fprintln(w, pterm.Gray(strings.Join(details, "\n")))
	}
}
