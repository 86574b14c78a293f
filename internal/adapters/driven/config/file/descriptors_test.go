package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

func writeDescriptors(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDescriptors_Default(t *testing.T) {
	pages, err := LoadDescriptors("")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDescriptors(), pages)
}

func TestLoadDescriptors_Formats(t *testing.T) {
	want := []domain.PageDescriptor{
		{ID: "arrays", DisplayName: "Arrays & Hashing", CountHint: "8 Easy • 12 Med • 7 Hard"},
		{ID: "tries", DisplayName: "Tries"},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "pages.yaml",
			content: `pages:
  - id: arrays
    name: Arrays & Hashing
    hint: 8 Easy • 12 Med • 7 Hard
  - id: tries
    name: Tries
`,
		},
		{
			name: "toml",
			file: "pages.TOML",
			content: `[[pages]]
id = "arrays"
name = "Arrays & Hashing"
hint = "8 Easy • 12 Med • 7 Hard"

[[pages]]
id = "tries"
name = "Tries"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := LoadDescriptors(writeDescriptors(t, tt.file, tt.content))

			require.NoError(t, err)
			assert.Equal(t, want, pages)
		})
	}
}

func TestLoadDescriptors_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unsupported extension", "pages.json", `{}`, domain.ErrInvalidInput},
		{"empty table", "pages.yaml", "pages: []\n", domain.ErrInvalidInput},
		{"missing name", "pages.yaml", "pages:\n  - id: arrays\n", domain.ErrInvalidInput},
		{"duplicate id", "pages.yaml", "pages:\n  - {id: a, name: A}\n  - {id: a, name: B}\n", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDescriptors(writeDescriptors(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDescriptors_MissingFile(t *testing.T) {
	_, err := LoadDescriptors(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadDescriptors_Malformed(t *testing.T) {
	_, err := LoadDescriptors(writeDescriptors(t, "pages.yaml", "pages: [unclosed"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
