package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/promptforge/subst"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Formatting defaults
	v.SetDefault("format.placeholder", subst.DefaultToken)
	v.SetDefault("format.workers", 1)
	v.SetDefault("format.output", "formatted_prompts.json")

	// Library defaults
	v.SetDefault("library.path", DefaultLibraryPath())
}

// Default returns a Config populated with defaults only, used by `config init`
// to write a starter file.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	// Unmarshal over defaults cannot fail: the keys above match the struct.
	_ = v.Unmarshal(&cfg)
	return &cfg
}
