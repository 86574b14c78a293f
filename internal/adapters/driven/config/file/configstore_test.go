package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagepatch.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, store.Path())
}

func TestNewConfigStore_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	val, ok := store.Get(KeyCorpusDir)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	path := writeConfig(t, "this is not valid TOML {{{[[")

	store, err := NewConfigStore(path)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Getters(t *testing.T) {
	path := writeConfig(t, `
corpus_dir = "site/patterns"
concurrency = 4
exclusions = ["arrays.html", "index"]
steps = "rows"

[generate]
template = "arrays.html"
`)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "site/patterns", store.GetString(KeyCorpusDir))
	assert.Equal(t, 4, store.GetInt(KeyConcurrency))
	assert.Equal(t, []string{"arrays.html", "index"}, store.GetStringSlice(KeyExclusions))
	assert.Equal(t, []string{"rows"}, store.GetStringSlice(KeySteps))
	assert.Equal(t, "arrays.html", store.GetString(KeyTemplate))

	// Wrong types read as zero values.
	assert.Equal(t, 0, store.GetInt(KeyCorpusDir))
	assert.Equal(t, "", store.GetString(KeyConcurrency))
	assert.Nil(t, store.GetStringSlice(KeyConcurrency))
}

func TestConfigStore_Resolve(t *testing.T) {
	path := writeConfig(t, `
corpus_dir = "site/patterns"
data_dir = "site/data"
exclusions = []
concurrency = 8
data_import_prefix = "/data/"
assets_prefix = "/assets/"
steps = ["widgets", "rows"]

[generate]
template = "hashing.html"
descriptors = "pages.yaml"
`)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	cfg, err := store.Resolve()

	require.NoError(t, err)
	assert.Equal(t, domain.Config{
		CorpusDir:        "site/patterns",
		DataDir:          "site/data",
		Exclusions:       []string{},
		Concurrency:      8,
		DataImportPrefix: "/data/",
		AssetsPrefix:     "/assets/",
		Steps:            []domain.Transition{domain.TransitionWidgets, domain.TransitionRows},
		TemplateName:     "hashing.html",
		DescriptorsPath:  "pages.yaml",
	}, cfg)
}

func TestConfigStore_ResolveDefaults(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	cfg, err := store.Resolve()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestConfigStore_ResolveRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero concurrency", "concurrency = 0"},
		{"unknown step", `steps = ["rows", "teleport"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewConfigStore(writeConfig(t, tt.content))
			require.NoError(t, err)

			_, err = store.Resolve()
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestConfigStore_SaveKeepsTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagepatch.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	store.Set(KeyCorpusDir, "patterns")
	store.Set(KeyConcurrency, 2)
	store.Set(KeyTemplate, "arrays.html")
	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[generate]")

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "patterns", reloaded.GetString(KeyCorpusDir))
	assert.Equal(t, 2, reloaded.GetInt(KeyConcurrency))
	assert.Equal(t, "arrays.html", reloaded.GetString(KeyTemplate))
}

func TestConfigStore_SaveWriteError(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "missing", "pagepatch.toml"))
	require.NoError(t, err)

	store.Set(KeyCorpusDir, "patterns")
	assert.Error(t, store.Save())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "pagepatch.toml"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestFlattenUnflatten(t *testing.T) {
	nested := map[string]any{
		"corpus_dir": "patterns",
		"generate":   map[string]any{"template": "arrays.html"},
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{
		"corpus_dir":        "patterns",
		"generate.template": "arrays.html",
	}, flat)
	assert.Equal(t, nested, unflattenMap(flat))
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagepatch.toml")
	cfg := domain.DefaultConfig()
	cfg.Concurrency = 3
	cfg.Steps = []domain.Transition{domain.TransitionRows, domain.TransitionAnimations}

	require.NoError(t, WriteConfig(path, cfg))

	store, err := NewConfigStore(path)
	require.NoError(t, err)
	got, err := store.Resolve()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
