package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRegenerate(t *testing.T) {
	c := NewCache()

	// Unknown origin always regenerates.
	assert.True(t, c.ShouldRegenerate("a.go", "h1"))

	c.Update("a.go", "h1", []string{"p.A_repr"}, []string{"out/p/A_repr.go"})

	assert.False(t, c.ShouldRegenerate("a.go", "h1"))
	assert.True(t, c.ShouldRegenerate("a.go", "h2"))
}

func TestUpdateReplacesWholesale(t *testing.T) {
	c := NewCache()
	c.Update("a.go", "h1", []string{"p.A_repr", "p.B_repr"}, nil)
	c.Update("a.go", "h2", []string{"p.A_repr"}, nil)

	assert.Equal(t, []string{"p.A_repr"}, c.Outputs("a.go"))
	assert.False(t, c.ShouldRegenerate("a.go", "h2"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "cache.toml")

	c := NewCache()
	c.Update("a.go", "h1", []string{"p.A_repr"}, []string{"out/p/A_repr.go"})
	c.Update("b.go", "h2", []string{"p.B_repr"}, []string{"out/p/B_repr.go"})
	require.NoError(t, c.Save(path))

	loaded, err := LoadCache(path)
	require.NoError(t, err)

	assert.Equal(t, 2, loaded.Len())
	assert.False(t, loaded.ShouldRegenerate("a.go", "h1"))
	assert.False(t, loaded.ShouldRegenerate("b.go", "h2"))
	assert.Equal(t, []string{"p.A_repr"}, loaded.Outputs("a.go"))
}

func TestLoadMissingCacheIsEmpty(t *testing.T) {
	c, err := LoadCache(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadIncompatibleVersionStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.toml")
	stale := `version = "99.0.0"

[origins."a.go"]
hash = "h1"
outputs = ["p.A_repr"]
paths = []
`
	require.NoError(t, os.WriteFile(path, []byte(stale), 0644))

	c, err := LoadCache(path)
	require.NoError(t, err)

	// Starting over costs one regeneration; misreading costs correctness.
	assert.Equal(t, 0, c.Len())
}

func TestPruneStaleRemovesRecordsAndOutputs(t *testing.T) {
	dir := t.TempDir()
	orphan := filepath.Join(dir, "A_repr.go")
	require.NoError(t, os.WriteFile(orphan, []byte("// generated"), 0644))

	c := NewCache()
	c.Update("gone.go", "h1", []string{"p.A_repr"}, []string{orphan})
	c.Update("kept.go", "h2", []string{"p.B_repr"}, nil)

	pruned := c.PruneStale(map[string]bool{"kept.go": true})

	assert.Equal(t, []string{"gone.go"}, pruned)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.ShouldRegenerate("gone.go", "h1"))

	_, err := os.Stat(orphan)
	assert.True(t, os.IsNotExist(err), "orphaned output should be removed")
}

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash([]byte("type Point struct{ X, Y int }"))
	b := ContentHash([]byte("type Point struct{ X, Y int }"))
	c := ContentHash([]byte("type Point struct{ X, Y, Z int }"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.go")
	require.NoError(t, os.WriteFile(path, []byte("package geom"), 0644))

	h1, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, ContentHash([]byte("package geom")), h1)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}
