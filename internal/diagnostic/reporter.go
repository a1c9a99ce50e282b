package diagnostic

import (
	"github.com/sirupsen/logrus"
)

// Reporter is an append-only diagnostics sink. It never acknowledges or
// rejects a diagnostic and must not influence generation.
type Reporter interface {
	Report(d Diagnostic)
}

var _ Reporter = (*Diagnostics)(nil)

// Nop discards every diagnostic.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(Diagnostic) {}

// MultiReporter fans a diagnostic out to several reporters.
type MultiReporter []Reporter

// Report implements Reporter.
func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// LogReporter mirrors diagnostics into a logrus logger.
type LogReporter struct {
	Log logrus.FieldLogger
}

// Report implements Reporter.
func (r LogReporter) Report(d Diagnostic) {
	if r.Log == nil {
		return
	}

	entry := r.Log.WithField("code", d.Code)
	if d.Union != "" {
		entry = entry.WithField("union", d.Union)
	}

	if d.Origin != "" {
		entry = entry.WithField("origin", d.Origin)
	}

	switch d.Severity {
	case DiagnosticError:
		entry.Error(d.Message)
	case DiagnosticWarning:
		entry.Warn(d.Message)
	default:
		entry.Info(d.Message)
	}
}
