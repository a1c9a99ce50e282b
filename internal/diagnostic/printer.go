package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer renders diagnostics as "severity: origin [union]: [code] message"
// lines, coloring the severity when enabled.
type Printer struct {
	w       io.Writer
	errC    *color.Color
	warnC   *color.Color
	infoC   *color.Color
	enabled bool
}

// NewPrinter creates a printer writing to w. Colors follow the fatih/color
// defaults (NO_COLOR, non-terminal output) unless forced with useColor.
func NewPrinter(w io.Writer, useColor *bool) *Printer {
	p := &Printer{
		w:     w,
		errC:  color.New(color.FgRed, color.Bold),
		warnC: color.New(color.FgYellow, color.Bold),
		infoC: color.New(color.FgCyan),
	}

	p.enabled = !color.NoColor
	if useColor != nil {
		p.enabled = *useColor
	}

	for _, c := range []*color.Color{p.errC, p.warnC, p.infoC} {
		if p.enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Report implements Reporter by printing the diagnostic immediately.
func (p *Printer) Report(d Diagnostic) {
	fmt.Fprintf(p.w, "%s: %s\n", p.severity(d.Severity), d.String())
}

// Print writes every diagnostic of ds, errors first.
func (p *Printer) Print(ds *Diagnostics) {
	for _, d := range ds.All() {
		p.Report(d)
	}
}

func (p *Printer) severity(s DiagnosticSeverity) string {
	switch s {
	case DiagnosticError:
		return p.errC.Sprint(s.String())
	case DiagnosticWarning:
		return p.warnC.Sprint(s.String())
	default:
		return p.infoC.Sprint(s.String())
	}
}
