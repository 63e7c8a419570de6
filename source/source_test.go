package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/promptforge/value"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadPrompts(t *testing.T) {
	path := writeTemp(t, "prompts.txt", "  first prompt  \n\n second prompt\n\t\nthird\n")

	prompts, err := ReadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first prompt", "second prompt", "third"}, prompts)
}

func TestReadPromptsEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", "")

	prompts, err := ReadPrompts(path)
	require.NoError(t, err)
	require.NotNil(t, prompts)
	assert.Len(t, prompts, 0)
}

func TestReadPromptsMissingFile(t *testing.T) {
	_, err := ReadPrompts(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestReadPromptsFrom(t *testing.T) {
	prompts, err := ReadPromptsFrom(strings.NewReader("a\n\nb"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, prompts)
}

func TestReadTemplateJSON(t *testing.T) {
	path := writeTemp(t, "t.json", `{"role": "expert", "prompt": "{{prompt}}"}`)

	v, err := ReadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, `{"role":"expert","prompt":"{{prompt}}"}`, v.EncodeJSON())
}

func TestReadTemplateInvalidJSON(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"role": "expert",}`)

	_, err := ReadTemplate(path)
	require.Error(t, err)
}

func TestReadTemplateRepair(t *testing.T) {
	// Trailing comma and single quotes, both repairable.
	path := writeTemp(t, "bad.json", `{'role': 'expert', 'prompt': '{{prompt}}',}`)

	v, err := ReadTemplate(path, WithRepair())
	require.NoError(t, err)

	prompt, ok := v.Get("prompt")
	require.True(t, ok)
	assert.Equal(t, "{{prompt}}", prompt.Text())
}

func TestReadTemplateYAML(t *testing.T) {
	path := writeTemp(t, "t.yaml", strings.Join([]string{
		"role: expert",
		"prompt: '{{prompt}}'",
		"meta:",
		"  n: 1",
		"  flag: true",
		"  nothing: null",
		"list:",
		"  - '{{prompt}}'",
		"  - 2.5",
	}, "\n"))

	v, err := ReadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"role":"expert","prompt":"{{prompt}}","meta":{"n":1,"flag":true,"nothing":null},"list":["{{prompt}}",2.5]}`,
		v.EncodeJSON())
}

func TestReadTemplateHJSON(t *testing.T) {
	path := writeTemp(t, "t.hjson", strings.Join([]string{
		"{",
		"  # reusable branding template",
		"  role: expert",
		"  prompt: \"{{prompt}}\"",
		"}",
	}, "\n"))

	v, err := ReadTemplate(path)
	require.NoError(t, err)
	require.Equal(t, value.Object, v.Kind())

	role, ok := v.Get("role")
	require.True(t, ok)
	assert.Equal(t, "expert", role.Text())

	prompt, ok := v.Get("prompt")
	require.True(t, ok)
	assert.Equal(t, "{{prompt}}", prompt.Text())
}

func TestDeriveJSONLPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"output.json", "output.jsonl"},
		{"dir/output.json", "dir/output.jsonl"},
		{"output.JSON", "output.jsonl"},
		{"output.txt", "output.txt.jsonl"},
		{"output", "output.jsonl"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveJSONLPath(tt.in), "DeriveJSONLPath(%q)", tt.in)
	}
}

func TestWriteOutputCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.jsonl")
	require.NoError(t, WriteOutput(path, "{}\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}
