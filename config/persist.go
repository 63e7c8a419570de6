package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/promptforge/errors"
)

// WriteDefault writes a starter promptforge.toml with built-in defaults to
// path. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.NewInvalidRequestError("%s already exists", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	header := "# promptforge configuration\n# Values here override built-in defaults; PROMPTFORGE_* environment\n# variables override both.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Render returns the TOML form of a config, used by `config show`.
func Render(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to render config")
	}
	return string(data), nil
}
