package emit

import (
	"os"
	"path/filepath"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
	"github.com/gubacsiaronmate/markergen/synth"
)

// Writer persists generation units under one output root. The artifact
// path is deterministic: <root>/<package-as-path>/<name>_<suffix>.<ext>.
type Writer struct {
	// OutputRoot is the directory generated artifacts are written under.
	OutputRoot string
}

// NewWriter returns a Writer rooted at outputRoot.
func NewWriter(outputRoot string) *Writer {
	return &Writer{OutputRoot: outputRoot}
}

// Path returns the artifact path for a unit without writing it.
func (w *Writer) Path(u *synth.Unit) string {
	pkgPath := decl.PackageAsPath(u.Declaration.Package)
	return filepath.Join(w.OutputRoot, filepath.FromSlash(pkgPath), u.FileName)
}

// Write persists one unit and returns its artifact path. A failure is a
// per-unit ErrWriteFailure; the caller reports it and moves on to sibling
// units, and must not update the cache for this unit's origin.
func (w *Writer) Write(u *synth.Unit) (string, error) {
	path := w.Path(u)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewWriteFailure(err, "failed to create output directory for "+u.Identifier)
	}
	if err := os.WriteFile(path, []byte(u.Text), 0644); err != nil {
		return "", errors.NewWriteFailure(err, "failed to write "+u.Identifier)
	}
	return path, nil
}
