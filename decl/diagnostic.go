package decl

import (
	"fmt"
	"strings"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity label used in rendered diagnostics.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic records one recoverable problem encountered during a pass.
// Diagnostics never abort processing of sibling declarations.
type Diagnostic struct {
	// Identity is the fully-qualified declaration (or member) the
	// diagnostic is about.
	Identity string

	// Message is the human-readable description.
	Message string

	// Severity grades the diagnostic.
	Severity Severity

	// Err carries the underlying sentinel error kind, when one applies.
	// Classify with errors.Is.
	Err error
}

// String renders the diagnostic as "severity: identity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Identity, d.Message)
}

// Diagnostics is the accumulated diagnostic list of a pass.
type Diagnostics []Diagnostic

// Errors returns the subset with SeverityError.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the subset with SeverityWarning.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// String renders one diagnostic per line.
func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}
