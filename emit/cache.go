package emit

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/gubacsiaronmate/markergen/errors"
	"github.com/gubacsiaronmate/markergen/version"
)

// Record is the dependency state of one origin file: the content hash last
// seen and the outputs it produced. Records are replaced wholesale when
// their origin changes; they are never patched field by field.
type Record struct {
	// Hash is the base58 content hash of the origin file at the last
	// successful pass.
	Hash string `toml:"hash"`

	// Outputs are the output identifiers the origin produced.
	Outputs []string `toml:"outputs"`

	// Paths are the on-disk artifact paths, kept so pruning can remove
	// orphaned generated files.
	Paths []string `toml:"paths"`
}

// cacheFile is the on-disk layout of the cache.
type cacheFile struct {
	Version string            `toml:"version"`
	Origins map[string]Record `toml:"origins"`
}

// Cache is the process-wide DependencyRecord store. It survives across
// passes and may be persisted between tool invocations.
//
// The mutex serializes all record updates. The invariant is one writer per
// origin file; a single lock satisfies it, and record updates are far too
// cheap for finer striping to buy anything.
type Cache struct {
	mu      sync.Mutex
	origins map[string]Record
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{origins: make(map[string]Record)}
}

// LoadCache reads a persisted cache from path. A missing file yields an
// empty cache, as does a cache stamped with an incompatible format version
// — starting over only costs one full regeneration, misreading costs
// correctness.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCache(), nil
		}
		return nil, errors.Wrapf(err, "failed to read cache %s", path)
	}

	var cf cacheFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse cache %s", path)
	}
	if !version.CacheCompatible(cf.Version) {
		return NewCache(), nil
	}
	if cf.Origins == nil {
		cf.Origins = make(map[string]Record)
	}
	return &Cache{origins: cf.Origins}, nil
}

// Save persists the cache to path, creating parent directories as needed.
func (c *Cache) Save(path string) error {
	c.mu.Lock()
	cf := cacheFile{
		Version: version.CacheFormatVersion,
		Origins: make(map[string]Record, len(c.origins)),
	}
	for origin, rec := range c.origins {
		cf.Origins[origin] = rec
	}
	c.mu.Unlock()

	data, err := toml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "failed to encode cache")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create cache directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write cache %s", path)
	}
	return nil
}

// ShouldRegenerate reports whether the origin file needs a new pass: true
// when no record exists or the recorded hash differs from currentHash.
func (c *Cache) ShouldRegenerate(originFile, currentHash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.origins[originFile]
	return !ok || rec.Hash != currentHash
}

// Update replaces the record for originFile wholesale with the given hash
// and output set. Callers invoke it only after every write for the origin
// succeeded; a failed write leaves the old record in place so the next
// pass retries.
func (c *Cache) Update(originFile, hash string, outputs, paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.origins[originFile] = Record{Hash: hash, Outputs: outputs, Paths: paths}
}

// Outputs returns the output identifiers recorded for originFile.
func (c *Cache) Outputs(originFile string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.origins[originFile].Outputs
}

// Origins returns the recorded origin files, sorted.
func (c *Cache) Origins() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.origins))
	for origin := range c.origins {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of recorded origins.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.origins)
}

// PruneStale drops records whose origin file is no longer part of the
// current pass and best-effort deletes their generated artifacts, so a
// renamed or deleted source does not leave orphaned outputs behind.
// Returns the pruned origins, sorted, for diagnostics.
func (c *Cache) PruneStale(currentOrigins map[string]bool) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pruned []string
	for origin, rec := range c.origins {
		if currentOrigins[origin] {
			continue
		}
		for _, p := range rec.Paths {
			// Removal failure is tolerable: the record is gone either way
			// and a leftover file cannot resurrect it.
			os.Remove(p)
		}
		delete(c.origins, origin)
		pruned = append(pruned, origin)
	}
	sort.Strings(pruned)
	return pruned
}
