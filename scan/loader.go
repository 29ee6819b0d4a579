package scan

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"reflect"
	"regexp"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

// Marker is the doc-comment directive that opts a declaration into
// generation, written like any Go tool directive:
//
//	//markergen:repr
//	type Point struct { ... }
const Marker = "markergen:repr"

// ExcludeTag is the struct tag key whose "-" value opts a member out of
// generation: `repr:"-"`.
const ExcludeTag = "repr"

// generatedRx matches the conventional generated-code header. Declarations
// in files carrying it are not valid marker targets.
var generatedRx = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// FromPackages loads the Go packages matching the given patterns and
// captures every type declaration, marked or not, in source order. The
// scanner decides what proceeds; the loader only records what it saw.
//
// A load failure is the one structural failure of a pass: the context
// cannot be enumerated, so there is nothing to recover per-declaration.
func FromPackages(patterns ...string) ([]decl.Declaration, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %v", patterns)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %v", patterns)
	}

	var decls []decl.Declaration
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
		for _, file := range pkg.Syntax {
			decls = append(decls, fromFile(pkg.Fset, pkg.PkgPath, file)...)
		}
	}
	return decls, nil
}

// FromDir loads the single package rooted at dir.
func FromDir(dir string) ([]decl.Declaration, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package in %s", dir)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no package found in %s", dir)
	}

	var decls []decl.Declaration
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
		for _, file := range pkg.Syntax {
			decls = append(decls, fromFile(pkg.Fset, pkg.PkgPath, file)...)
		}
	}
	return decls, nil
}

// fromFile captures the type declarations of one parsed file.
func fromFile(fset *token.FileSet, pkgPath string, file *ast.File) []decl.Declaration {
	generated := isGeneratedFile(file)
	origin := fset.Position(file.Pos()).Filename

	var decls []decl.Declaration
	for _, raw := range file.Decls {
		gd, ok := raw.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			d := decl.Declaration{
				Package:    pkgPath,
				Name:       ts.Name.Name,
				OriginFile: origin,
				Generated:  generated,
				HasMarker:  hasMarker(gd.Doc) || hasMarker(ts.Doc),
			}

			switch t := ts.Type.(type) {
			case *ast.StructType:
				d.Kind = decl.KindStruct
				d.Members = captureMembers(fset, t)
			case *ast.InterfaceType:
				d.Kind = decl.KindInterface
			default:
				d.Kind = decl.KindUnsupported
			}

			decls = append(decls, d)
		}
	}
	return decls
}

// captureMembers records the named fields of a struct in declaration order.
// Embedded and unexported fields are not generatable and are not captured;
// everything else is, with exclusion and representability noted for the
// extractor to act on.
func captureMembers(fset *token.FileSet, st *ast.StructType) []decl.Member {
	var members []decl.Member
	ordinal := 0

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// Embedded field
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			members = append(members, decl.Member{
				Name:            name.Name,
				Type:            typeText(fset, field.Type),
				Ordinal:         ordinal,
				Excluded:        isExcluded(field.Tag),
				Unrepresentable: isUnrepresentable(field.Type),
			})
			ordinal++
		}
	}
	return members
}

// typeText renders a type expression verbatim from the AST. The engine
// never interprets the text, only prints it.
func typeText(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "<?>"
	}
	return buf.String()
}

// isUnrepresentable reports whether a member's declared type cannot be
// rendered as printable text. Function- and channel-typed members have no
// textual value representation.
func isUnrepresentable(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.FuncType, *ast.ChanType:
		return true
	case *ast.StarExpr:
		return isUnrepresentable(t.X)
	}
	return false
}

// isExcluded parses the field tag for `repr:"-"`.
func isExcluded(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	st := reflect.StructTag(strings.Trim(tag.Value, "`"))
	return st.Get(ExcludeTag) == "-"
}

// hasMarker reports whether a doc comment carries the marker directive.
func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if strings.TrimSpace(text) == Marker {
			return true
		}
	}
	return false
}

// isGeneratedFile reports whether any comment before the package clause is
// the conventional generated-code header.
func isGeneratedFile(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() > file.Package {
			break
		}
		for _, c := range group.List {
			if generatedRx.MatchString(c.Text) {
				return true
			}
		}
	}
	return false
}
