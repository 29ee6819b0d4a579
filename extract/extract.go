// Package extract resolves the ordered set of generatable members for one
// valid declaration.
package extract

import (
	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

// Eligible returns the members of d that participate in generation, in
// declaration order, plus diagnostics for members that were dropped.
//
// An explicit `repr:"-"` exclusion is an author choice and dropped
// silently. An unrepresentable member (function- or channel-typed) is
// dropped with a warning; the declaration still proceeds. Zero eligible
// members is not an error — the declaration still produces an output with
// an empty member list.
func Eligible(d decl.Declaration) ([]decl.Member, decl.Diagnostics) {
	var (
		members []decl.Member
		diags   decl.Diagnostics
	)

	for _, m := range d.Members {
		if m.Excluded {
			continue
		}
		if m.Unrepresentable {
			diags = append(diags, decl.Diagnostic{
				Identity: d.Identity() + "." + m.Name,
				Message:  "member type " + m.Type + " has no textual representation; member excluded",
				Severity: decl.SeverityWarning,
				Err:      errors.ErrUnrepresentableMember,
			})
			continue
		}
		members = append(members, m)
	}

	return members, diags
}
