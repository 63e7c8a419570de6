package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/promptforge/errors"
)

// WriteOutput writes encoded output to path, creating parent directories as
// needed.
func WriteOutput(path, data string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// DeriveJSONLPath derives the JSONL output path from a JSON input path by
// swapping the .json extension for .jsonl. Paths without a .json extension
// get .jsonl appended.
func DeriveJSONLPath(jsonPath string) string {
	if strings.EqualFold(filepath.Ext(jsonPath), ".json") {
		return jsonPath[:len(jsonPath)-len(filepath.Ext(jsonPath))] + ".jsonl"
	}
	return jsonPath + ".jsonl"
}
