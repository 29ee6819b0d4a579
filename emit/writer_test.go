package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
	"github.com/gubacsiaronmate/markergen/synth"
)

func pointUnit() *synth.Unit {
	return &synth.Unit{
		Declaration: decl.Declaration{Package: "example.com/app/geom", Name: "Point", Kind: decl.KindStruct},
		Identifier:  "example.com/app/geom.Point_repr",
		FileName:    "Point_repr.go",
		Text:        "package geom\n",
	}
}

func TestWriteCreatesDeterministicPath(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	u := pointUnit()

	path, err := w.Write(u)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "example.com", "app", "geom", "Point_repr.go"), path)
	assert.Equal(t, w.Path(u), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, u.Text, string(data))
}

func TestWriteFailureIsPerUnit(t *testing.T) {
	root := t.TempDir()

	// A file where the package directory should be makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(root, "example.com"), []byte("in the way"), 0644))

	_, err := NewWriter(root).Write(pointUnit())
	require.Error(t, err)
	assert.True(t, errors.IsWriteFailure(err))
}
