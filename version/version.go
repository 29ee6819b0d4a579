package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// CacheFormatVersion is the version stamped into DependencyRecord cache
// files. Bump the major when the cache layout changes incompatibly; readers
// discard caches from a different major rather than misreading them.
const CacheFormatVersion = "1.0.0"

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("markergen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("markergen dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return fmt.Sprintf("markergen@%s", i.CommitHash[:7])
	}
	return fmt.Sprintf("markergen@%s", i.CommitHash)
}

// CacheCompatible reports whether a cache file stamped with the given
// version can be read by this binary. Unparseable versions are treated as
// incompatible.
func CacheCompatible(stamped string) bool {
	have, err := semver.NewVersion(CacheFormatVersion)
	if err != nil {
		return false
	}
	got, err := semver.NewVersion(stamped)
	if err != nil {
		return false
	}
	return got.Major() == have.Major()
}
