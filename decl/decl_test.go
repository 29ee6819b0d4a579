package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclarationIdentity(t *testing.T) {
	d := Declaration{Package: "example.com/app/geom", Name: "Point"}
	assert.Equal(t, "example.com/app/geom.Point", d.Identity())
}

func TestOutputIdentifierDistinguishesPackages(t *testing.T) {
	// Same simple name and suffix in different packages must not collide.
	person := Declaration{Package: "example.com/app/people", Name: "Person"}
	worker := Declaration{Package: "example.com/app/jobs", Name: "Person"}

	assert.NotEqual(t,
		person.OutputIdentifier("repr"),
		worker.OutputIdentifier("repr"),
	)

	// Identical package+name+suffix is exactly one identifier.
	twin := Declaration{Package: "example.com/app/people", Name: "Person"}
	assert.Equal(t,
		person.OutputIdentifier("repr"),
		twin.OutputIdentifier("repr"),
	)
}

func TestOutputNaming(t *testing.T) {
	d := Declaration{Package: "example.com/app/geom", Name: "Point"}

	assert.Equal(t, "example.com/app/geom.Point_repr", d.OutputIdentifier("repr"))
	assert.Equal(t, "Point_repr.go", d.OutputFileName("repr", "go"))
	assert.Equal(t, "out/example.com/app/geom/Point_repr.go", d.OutputPath("out", "repr", "go"))
	assert.Equal(t, "geom", d.PackageName())
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		d    Declaration
		want bool
	}{
		{"struct", Declaration{Name: "Point", Kind: KindStruct}, true},
		{"interface", Declaration{Name: "Shape", Kind: KindInterface}, false},
		{"unsupported", Declaration{Name: "Alias", Kind: KindUnsupported}, false},
		{"nameless", Declaration{Kind: KindStruct}, false},
		{"generated", Declaration{Name: "Point", Kind: KindStruct, Generated: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Valid())
		})
	}
}

func TestDiagnosticsFiltering(t *testing.T) {
	ds := Diagnostics{
		{Identity: "a.A", Message: "bad", Severity: SeverityError},
		{Identity: "b.B", Message: "odd", Severity: SeverityWarning},
		{Identity: "c.C", Message: "fyi", Severity: SeverityInfo},
	}

	assert.Len(t, ds.Errors(), 1)
	assert.Len(t, ds.Warnings(), 1)
	assert.True(t, ds.HasErrors())
	assert.Equal(t, "error: a.A: bad", ds[0].String())
}
