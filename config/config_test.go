package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "{{prompt}}", cfg.Format.Placeholder)
	assert.Equal(t, 1, cfg.Format.Workers)
	assert.Equal(t, "formatted_prompts.json", cfg.Format.Output)
	assert.NotEmpty(t, cfg.Library.Path)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptforge.toml")
	content := "[format]\nplaceholder = \"{{CHALLENGE}}\"\nworkers = 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{{CHALLENGE}}", cfg.Format.Placeholder)
	assert.Equal(t, 4, cfg.Format.Workers)
	// Unset keys fall back to defaults.
	assert.Equal(t, "formatted_prompts.json", cfg.Format.Output)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptforge.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Format.Placeholder, cfg.Format.Placeholder)

	// Second write must refuse to clobber.
	require.Error(t, WriteDefault(path))
}

func TestRender(t *testing.T) {
	out, err := Render(Default())
	require.NoError(t, err)
	assert.Contains(t, out, "placeholder")
	assert.Contains(t, out, "{{prompt}}")
}
