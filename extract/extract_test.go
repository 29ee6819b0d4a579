package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/errors"
)

func TestEligiblePreservesDeclarationOrder(t *testing.T) {
	d := decl.Declaration{
		Package: "p", Name: "T", Kind: decl.KindStruct,
		Members: []decl.Member{
			{Name: "Z", Type: "int", Ordinal: 0},
			{Name: "A", Type: "string", Ordinal: 1},
			{Name: "M", Type: "bool", Ordinal: 2},
		},
	}

	members, diags := Eligible(d)

	require.Len(t, members, 3)
	assert.Equal(t, "Z", members[0].Name)
	assert.Equal(t, "A", members[1].Name)
	assert.Equal(t, "M", members[2].Name)
	assert.Empty(t, diags)
}

func TestEligibleDropsExcludedSilently(t *testing.T) {
	d := decl.Declaration{
		Package: "p", Name: "T", Kind: decl.KindStruct,
		Members: []decl.Member{
			{Name: "Keep", Type: "int", Ordinal: 0},
			{Name: "Skip", Type: "string", Ordinal: 1, Excluded: true},
		},
	}

	members, diags := Eligible(d)

	require.Len(t, members, 1)
	assert.Equal(t, "Keep", members[0].Name)
	// An explicit opt-out is an author choice, not a diagnostic.
	assert.Empty(t, diags)
}

func TestEligibleReportsUnrepresentable(t *testing.T) {
	d := decl.Declaration{
		Package: "p", Name: "T", Kind: decl.KindStruct,
		Members: []decl.Member{
			{Name: "Name", Type: "string", Ordinal: 0},
			{Name: "Hook", Type: "func()", Ordinal: 1, Unrepresentable: true},
			{Name: "Age", Type: "int", Ordinal: 2},
		},
	}

	members, diags := Eligible(d)

	// Declaration still proceeds with the remaining members.
	require.Len(t, members, 2)
	assert.Equal(t, "Name", members[0].Name)
	assert.Equal(t, "Age", members[1].Name)

	require.Len(t, diags, 1)
	assert.Equal(t, decl.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "p.T.Hook", diags[0].Identity)
	assert.True(t, errors.IsUnrepresentableMember(diags[0].Err))
}

func TestEligibleZeroMembersIsValid(t *testing.T) {
	d := decl.Declaration{Package: "p", Name: "Empty", Kind: decl.KindStruct}

	members, diags := Eligible(d)

	assert.Empty(t, members)
	assert.Empty(t, diags)
}
