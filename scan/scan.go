// Package scan discovers marked declarations in a source context.
//
// The scanner itself is a pure pass over an externally supplied declaration
// set: it selects declarations carrying the generation marker and partitions
// them into valid targets and diagnostics. The loader half of the package
// (loader.go) builds that declaration set from real Go packages.
package scan

import (
	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

// Partition is the scanner's result: the marked declarations that may
// proceed to extraction, and diagnostics for marker misuse. Invalid
// declarations are surfaced, never silently dropped, and never abort the
// pass.
type Partition struct {
	Valid   []decl.Declaration
	Invalid decl.Diagnostics
}

// Scan selects the declarations carrying the generation marker and
// partitions them. Declarations without the marker are ignored. Result
// order follows input order, so identical input yields identical output.
func Scan(decls []decl.Declaration) Partition {
	var p Partition

	for _, d := range decls {
		if !d.HasMarker {
			continue
		}

		switch {
		case d.Generated:
			p.Invalid = append(p.Invalid, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  "marker on already-generated type",
				Severity: decl.SeverityError,
				Err:      errors.ErrInvalidMarkerUsage,
			})
		case d.Kind == decl.KindInterface:
			p.Invalid = append(p.Invalid, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  "marker on interface declaration",
				Severity: decl.SeverityError,
				Err:      errors.ErrInvalidMarkerUsage,
			})
		case !d.Valid():
			p.Invalid = append(p.Invalid, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  "marker on " + d.Kind.String() + " declaration",
				Severity: decl.SeverityError,
				Err:      errors.ErrInvalidMarkerUsage,
			})
		default:
			p.Valid = append(p.Valid, d)
		}
	}

	return p
}
