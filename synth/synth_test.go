package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

func TestRenderPointExactText(t *testing.T) {
	d := decl.Declaration{Package: "example.com/app/geom", Name: "Point", Kind: decl.KindStruct}
	members := []decl.Member{
		{Name: "x", Type: "int", Ordinal: 0},
		{Name: "y", Type: "int", Ordinal: 1},
	}

	unit, err := New().Render(d, members)
	require.NoError(t, err)

	// Member-access expressions are substituted at call time, not values
	// at generation time.
	want := `// Code generated by markergen. DO NOT EDIT.
//
// Source: example.com/app/geom.Point

package geom

import "fmt"

// Repr returns the canonical textual representation of Point.
func (v Point) Repr() string {
	return fmt.Sprintf("Point(x=%v, y=%v)", v.x, v.y)
}
`
	assert.Equal(t, want, unit.Text)
	assert.Equal(t, "example.com/app/geom.Point_repr", unit.Identifier)
	assert.Equal(t, "Point_repr.go", unit.FileName)
}

func TestRenderEmptyCase(t *testing.T) {
	d := decl.Declaration{Package: "example.com/app/geom", Name: "Empty", Kind: decl.KindStruct}

	unit, err := New().Render(d, nil)
	require.NoError(t, err)

	want := `// Code generated by markergen. DO NOT EDIT.
//
// Source: example.com/app/geom.Empty

package geom

// Repr returns the canonical textual representation of Empty.
func (v Empty) Repr() string {
	return "Empty()"
}
`
	assert.Equal(t, want, unit.Text)
}

func TestRenderIsByteIdenticalAcrossRuns(t *testing.T) {
	d := decl.Declaration{Package: "example.com/app/geom", Name: "Point", Kind: decl.KindStruct}
	members := []decl.Member{
		{Name: "x", Type: "int", Ordinal: 0},
		{Name: "y", Type: "int", Ordinal: 1},
	}

	s := New()
	first, err := s.Render(d, members)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := s.Render(d, members)
		require.NoError(t, err)
		assert.Equal(t, first.Text, again.Text)
	}
}

func TestCollisionsWithheldBothSides(t *testing.T) {
	a := decl.Declaration{Package: "example.com/app/people", Name: "Person", OriginFile: "a.go", Kind: decl.KindStruct}
	b := decl.Declaration{Package: "example.com/app/people", Name: "Person", OriginFile: "b.go", Kind: decl.KindStruct}

	ok, diags := New().Collisions([]decl.Declaration{a, b})

	assert.Empty(t, ok)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, decl.SeverityError, d.Severity)
		assert.True(t, errors.IsOutputNameCollision(d.Err))
	}
}

func TestCollisionsAllowSameNameAcrossPackages(t *testing.T) {
	person := decl.Declaration{Package: "example.com/app/people", Name: "Person", Kind: decl.KindStruct}
	worker := decl.Declaration{Package: "example.com/app/jobs", Name: "Person", Kind: decl.KindStruct}

	ok, diags := New().Collisions([]decl.Declaration{person, worker})

	assert.Len(t, ok, 2)
	assert.Empty(t, diags)
}

func TestCollisionsPreserveSurvivorOrder(t *testing.T) {
	a := decl.Declaration{Package: "p1", Name: "A", Kind: decl.KindStruct}
	b := decl.Declaration{Package: "p2", Name: "B", Kind: decl.KindStruct}
	dup1 := decl.Declaration{Package: "p3", Name: "C", OriginFile: "x.go", Kind: decl.KindStruct}
	dup2 := decl.Declaration{Package: "p3", Name: "C", OriginFile: "y.go", Kind: decl.KindStruct}

	ok, diags := New().Collisions([]decl.Declaration{a, dup1, b, dup2})

	require.Len(t, ok, 2)
	assert.Equal(t, "A", ok[0].Name)
	assert.Equal(t, "B", ok[1].Name)
	assert.Len(t, diags, 2)
}
