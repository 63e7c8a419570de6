// Package source handles the file boundary around the formatting core:
// reading prompt lists and templates, and writing encoded output. All parse
// failures surface here, before any value tree reaches the substitution
// engine.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/teranos/promptforge/errors"
)

// ReadPrompts reads one prompt per line from a text file. Lines are trimmed
// of surrounding whitespace and blank lines are skipped; an empty file yields
// an empty, non-nil slice.
func ReadPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open prompt file %s", path)
	}
	defer f.Close()

	prompts, err := ReadPromptsFrom(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read prompts from %s", path)
	}
	return prompts, nil
}

// ReadPromptsFrom reads prompts from an arbitrary reader, typically stdin.
func ReadPromptsFrom(r io.Reader) ([]string, error) {
	prompts := make([]string, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // prompts can be long single lines
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan prompt lines")
	}
	return prompts, nil
}
