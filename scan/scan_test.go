package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

func TestScanIgnoresUnmarked(t *testing.T) {
	decls := []decl.Declaration{
		{Package: "p", Name: "Plain", Kind: decl.KindStruct},
		{Package: "p", Name: "AlsoPlain", Kind: decl.KindInterface},
	}

	p := Scan(decls)

	assert.Empty(t, p.Valid)
	assert.Empty(t, p.Invalid)
}

func TestScanPartitionsMarked(t *testing.T) {
	decls := []decl.Declaration{
		{Package: "p", Name: "Good", Kind: decl.KindStruct, HasMarker: true},
		{Package: "p", Name: "Shape", Kind: decl.KindInterface, HasMarker: true},
		{Package: "p", Name: "Gen", Kind: decl.KindStruct, HasMarker: true, Generated: true},
		{Package: "p", Name: "Alias", Kind: decl.KindUnsupported, HasMarker: true},
	}

	p := Scan(decls)

	require.Len(t, p.Valid, 1)
	assert.Equal(t, "Good", p.Valid[0].Name)

	// Invalid declarations are diagnostics, not drops, and not fatal.
	require.Len(t, p.Invalid, 3)
	for _, d := range p.Invalid {
		assert.Equal(t, decl.SeverityError, d.Severity)
		assert.True(t, errors.IsInvalidMarkerUsage(d.Err))
	}
}

func TestScanPreservesInputOrder(t *testing.T) {
	decls := []decl.Declaration{
		{Package: "p", Name: "C", Kind: decl.KindStruct, HasMarker: true},
		{Package: "p", Name: "A", Kind: decl.KindStruct, HasMarker: true},
		{Package: "p", Name: "B", Kind: decl.KindStruct, HasMarker: true},
	}

	first := Scan(decls)
	second := Scan(decls)

	require.Len(t, first.Valid, 3)
	assert.Equal(t, "C", first.Valid[0].Name)
	assert.Equal(t, "A", first.Valid[1].Name)
	assert.Equal(t, "B", first.Valid[2].Name)
	assert.Equal(t, first, second)
}
