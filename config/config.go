// Package config loads promptforge configuration from (in precedence order)
// environment variables, a project-local promptforge.toml found by walking up
// from the working directory, and built-in defaults.
package config

import (
	"os"
	"path/filepath"
)

// Config is the root configuration for promptforge.
type Config struct {
	Format  FormatConfig  `mapstructure:"format" toml:"format"`
	Library LibraryConfig `mapstructure:"library" toml:"library"`
}

// FormatConfig controls the formatting pipeline.
type FormatConfig struct {
	// Placeholder is the literal token replaced by each prompt.
	Placeholder string `mapstructure:"placeholder" toml:"placeholder"`
	// Workers bounds parallel substitution; 1 means sequential.
	Workers int `mapstructure:"workers" toml:"workers"`
	// Output is the default output path for formatted records.
	Output string `mapstructure:"output" toml:"output"`
}

// LibraryConfig locates the template library.
type LibraryConfig struct {
	// Path to the SQLite library database.
	Path string `mapstructure:"path" toml:"path"`
}

// DefaultLibraryPath returns ~/.promptforge/library.db, falling back to a
// relative path when the home directory cannot be determined.
func DefaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "library.db"
	}
	return filepath.Join(home, ".promptforge", "library.db")
}
