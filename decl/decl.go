// Package decl defines the declaration model consumed by the generation
// pass: the type declarations discovered in a source context, their members,
// and the diagnostics produced while processing them.
//
// Declarations are plain value carriers. They are captured once by the
// scanner, are never mutated afterwards, and are discarded when the pass
// that consumed them completes.
package decl

import (
	"fmt"
	"path"
	"strings"
)

// Kind classifies a scanned declaration. The generation pass switches over
// this closed set; anything it does not recognize is KindUnsupported.
type Kind int

const (
	// KindStruct is a concrete struct-like declaration. The only kind
	// generation makes sense for.
	KindStruct Kind = iota

	// KindInterface is an interface-like declaration. Carrying the marker on
	// one is an InvalidMarkerUsage diagnostic.
	KindInterface

	// KindUnsupported covers everything else the loader surfaced but the
	// pass cannot process.
	KindUnsupported
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	default:
		return "unsupported"
	}
}

// Member is one generatable member of a Declaration. Members are owned
// exclusively by their Declaration and ordered by Ordinal, which is the
// source declaration order.
type Member struct {
	// Name is the member's declared name.
	Name string

	// Type is the declared type rendered verbatim from source. Opaque to
	// the engine; it is printed, never interpreted.
	Type string

	// Ordinal is the zero-based position in declaration order. Emission
	// order follows Ordinal.
	Ordinal int

	// Excluded marks members the author opted out of generation.
	Excluded bool

	// Unrepresentable marks members whose type cannot be rendered as
	// printable text (function- or channel-typed). They are dropped with a
	// diagnostic; the declaration still proceeds.
	Unrepresentable bool
}

// Declaration is one scanned type declaration.
type Declaration struct {
	// Package is the import path of the declaring package.
	Package string

	// Name is the declaration's simple name.
	Name string

	// OriginFile is the absolute path of the file declaring the type.
	OriginFile string

	// Kind classifies the declaration.
	Kind Kind

	// HasMarker is true when the generation marker was found on the
	// declaration. Set during scanning, never by runtime inspection.
	HasMarker bool

	// Generated is true when the declaration lives in a file that itself
	// carries a generated-code header. Marking such a declaration is
	// invalid.
	Generated bool

	// Members holds the declaration's members in source order.
	Members []Member
}

// Identity returns the fully-qualified name, "<package>.<name>".
func (d Declaration) Identity() string {
	return d.Package + "." + d.Name
}

// Valid reports whether the declaration is well-formed enough to proceed
// past the scanner: a concrete struct with a name, not itself generated.
func (d Declaration) Valid() bool {
	return d.Kind == KindStruct && d.Name != "" && !d.Generated
}

// OutputIdentifier derives the unique identifier of the generated unit,
// "<package>.<name>_<suffix>". Identifiers are compared across a pass;
// two declarations mapping to the same identifier is a collision and
// neither output is written.
func (d Declaration) OutputIdentifier(suffix string) string {
	return fmt.Sprintf("%s.%s_%s", d.Package, d.Name, suffix)
}

// OutputFileName returns the generated file's base name,
// "<name>_<suffix>.<ext>".
func (d Declaration) OutputFileName(suffix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", d.Name, suffix, ext)
}

// OutputPath returns the artifact path under root:
// "<root>/<package-as-path>/<name>_<suffix>.<ext>".
func (d Declaration) OutputPath(root, suffix, ext string) string {
	return path.Join(root, PackageAsPath(d.Package), d.OutputFileName(suffix, ext))
}

// PackageName returns the last path element of the package, the name used
// in the generated file's package clause.
func (d Declaration) PackageName() string {
	if i := strings.LastIndex(d.Package, "/"); i >= 0 {
		return d.Package[i+1:]
	}
	return d.Package
}

// PackageAsPath converts a package identity to a relative directory path.
// Go import paths are already slash-separated and pass through verbatim;
// a purely dotted namespace has its dots converted.
func PackageAsPath(pkg string) string {
	if strings.Contains(pkg, "/") {
		return pkg
	}
	return strings.ReplaceAll(pkg, ".", "/")
}
