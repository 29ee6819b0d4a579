// Package emit persists generation units and tracks the dependency state
// that makes regeneration incremental.
//
// Content hashing produces a deterministic digest of an origin file. Two
// passes over an unchanged file see the same digest and skip regeneration;
// any edit changes the digest and forces it. Digests are base58-encoded so
// they read compactly in the cache file and in diagnostics.
package emit

import (
	"crypto/sha256"
	"os"

	"github.com/mr-tron/base58"

	"github.com/gubacsiaronmate/markergen/errors"
)

// ContentHash computes the deterministic digest of origin-file content.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return base58.Encode(sum[:])
}

// HashFile computes the content hash of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}
	return ContentHash(data), nil
}
