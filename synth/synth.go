// Package synth deterministically renders generated source text for one
// declaration and its extracted members.
//
// Rendering is name-and-order substitution into a fixed embedded template.
// There is no external template loading and no code execution; for the same
// ordered member sequence the output is byte-identical across runs, which
// is what makes reproducible builds and the incremental cache meaningful.
package synth

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

// DefaultSuffix is the generated-unit suffix when config does not override it.
const DefaultSuffix = "repr"

// DefaultExtension is the generated-file extension when config does not
// override it.
const DefaultExtension = "go"

// Unit pairs one declaration with its synthesized output text and computed
// output identity. Units exist only for the duration of a single pass.
type Unit struct {
	// Declaration is the source declaration the unit was synthesized from.
	Declaration decl.Declaration

	// Identifier is the pass-unique output identifier,
	// "<package>.<name>_<suffix>".
	Identifier string

	// FileName is the generated file's base name.
	FileName string

	// Text is the rendered source text.
	Text string
}

// reprTemplate renders a declaration with at least one eligible member.
// The Sprintf format holds member-access expressions, so values are
// substituted at call time, never at generation time.
var reprTemplate = template.Must(template.New("repr").Parse(`// Code generated by markergen. DO NOT EDIT.
//
// Source: {{.Identity}}

package {{.PackageName}}

import "fmt"

// Repr returns the canonical textual representation of {{.TypeName}}.
func (v {{.TypeName}}) Repr() string {
	return fmt.Sprintf("{{.Format}}"{{range .Members}}, v.{{.Name}}{{end}})
}
`))

// emptyTemplate renders a declaration with zero eligible members. Still a
// valid output, per the empty-case rule: "<Name>()".
var emptyTemplate = template.Must(template.New("repr-empty").Parse(`// Code generated by markergen. DO NOT EDIT.
//
// Source: {{.Identity}}

package {{.PackageName}}

// Repr returns the canonical textual representation of {{.TypeName}}.
func (v {{.TypeName}}) Repr() string {
	return "{{.TypeName}}()"
}
`))

// Synthesizer renders generation units under one suffix/extension policy.
type Synthesizer struct {
	Suffix    string
	Extension string
}

// New returns a Synthesizer with the default suffix and extension.
func New() *Synthesizer {
	return &Synthesizer{Suffix: DefaultSuffix, Extension: DefaultExtension}
}

// Render synthesizes the unit for one declaration and its extracted
// members. Members must already be in emission order.
func (s *Synthesizer) Render(d decl.Declaration, members []decl.Member) (*Unit, error) {
	data := struct {
		Identity    string
		PackageName string
		TypeName    string
		Format      string
		Members     []decl.Member
	}{
		Identity:    d.Identity(),
		PackageName: d.PackageName(),
		TypeName:    d.Name,
		Format:      reprFormat(d.Name, members),
		Members:     members,
	}

	tmpl := reprTemplate
	if len(members) == 0 {
		tmpl = emptyTemplate
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", d.Identity())
	}

	return &Unit{
		Declaration: d,
		Identifier:  d.OutputIdentifier(s.Suffix),
		FileName:    d.OutputFileName(s.Suffix, s.Extension),
		Text:        sb.String(),
	}, nil
}

// reprFormat builds the Sprintf format string, "Name(a=%v, b=%v)".
func reprFormat(name string, members []decl.Member) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.Name + "=%v"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// Collisions checks output identifiers across one pass. Declarations with
// unique identifiers are returned in input order; every participant of a
// colliding identifier gets an error diagnostic and none of them render.
func (s *Synthesizer) Collisions(decls []decl.Declaration) ([]decl.Declaration, decl.Diagnostics) {
	counts := make(map[string]int, len(decls))
	for _, d := range decls {
		counts[d.OutputIdentifier(s.Suffix)]++
	}

	var (
		ok    []decl.Declaration
		diags decl.Diagnostics
	)
	for _, d := range decls {
		id := d.OutputIdentifier(s.Suffix)
		if counts[id] > 1 {
			diags = append(diags, decl.Diagnostic{
				Identity: d.Identity(),
				Message:  "output identifier " + id + " collides with another declaration; output withheld",
				Severity: decl.SeverityError,
				Err:      errors.ErrOutputNameCollision,
			})
			continue
		}
		ok = append(ok, d)
	}
	return ok, diags
}
