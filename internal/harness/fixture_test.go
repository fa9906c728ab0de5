package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFixture_YAML(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "scalars.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "scalars", f.Name)
	require.NotEmpty(t, f.Items)
	first := f.Items[0]
	assert.Equal(t, "by_key", first.Name)
	require.NotNil(t, first.Key)
	assert.Equal(t, "x", *first.Key)
	assert.Equal(t, "7@0f", first.Obj)
	require.NotNil(t, first.Value)
	assert.Equal(t, "int", first.Value.Type)
	assert.Equal(t, "42", first.Value.Value)
}

func TestLoadFixture_CUE(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "sync.cue"))
	require.NoError(t, err)

	assert.Equal(t, "sync", f.Name)
	assert.Equal(t, []string{"actor", "hash", "have", "message", "state", "doc"}, f.Names())
	assert.Len(t, f.Items[4].Value.Heads, 2)
}

func TestLoadFixture_CUENotConcrete(t *testing.T) {
	path := writeFixture(t, "open.cue", `
name: string
items: [{name: "a"}]
`)
	_, err := LoadFixture(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not concrete")
}

func TestLoadFixture_UnknownField(t *testing.T) {
	path := writeFixture(t, "typo.yaml", `
name: typo
items:
  - name: a
    vaule: { type: int, value: "1" }
`)
	_, err := LoadFixture(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFixture_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "items: [{name: a}]", "name is required"},
		{"no items", "name: x\nitems: []", "items list is required"},
		{"unnamed item", "name: x\nitems: [{obj: _root}]", "items[0]: name is required"},
		{"duplicate item", "name: x\nitems: [{name: a}, {name: a}]", "duplicate name"},
		{"key and pos", "name: x\nitems: [{name: a, key: k, pos: 1, obj: _root}]", "mutually exclusive"},
		{"index without obj", "name: x\nitems: [{name: a, key: k}]", "an index requires obj"},
		{"value without type", "name: x\nitems: [{name: a, value: {value: \"1\"}}]", "type is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(writeFixture(t, "f.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFixture_BadExtension(t *testing.T) {
	_, err := LoadFixture(writeFixture(t, "f.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported fixture extension")
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read fixture file")
}
