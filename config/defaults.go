package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generate.output_root", ".") // Write next to the source tree
	v.SetDefault("generate.suffix", "repr")   // Point_repr.go, geom.Point_repr
	v.SetDefault("generate.extension", "go")
	v.SetDefault("generate.workers", 4) // Extraction/synthesis fan-out
	v.SetDefault("generate.packages", []string{"./..."})

	// Cache defaults
	v.SetDefault("cache.path", ".markergen/cache.toml")

	// Watch defaults
	v.SetDefault("watch.debounce_ms", 500) // Collapse editor save bursts
}
