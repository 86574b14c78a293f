package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

func TestInitCmd_WritesDefaults(t *testing.T) {
	ta := setupCLITest(t, &mockBatchDriver{})
	path := filepath.Join(t.TempDir(), "pagepatch.toml")

	out, err := execute(t, "init", "--config", path, "--corpus", "site/patterns")

	require.NoError(t, err)
	require.NotNil(t, ta.written)
	want := domain.DefaultConfig()
	want.CorpusDir = "site/patterns"
	assert.Equal(t, want, *ta.written)
	assert.Contains(t, out, "Wrote "+path)
}

func TestInitCmd_RefusesToOverwrite(t *testing.T) {
	ta := setupCLITest(t, &mockBatchDriver{})
	path := filepath.Join(t.TempDir(), "pagepatch.toml")
	require.NoError(t, os.WriteFile(path, []byte("corpus_dir = \"x\"\n"), 0644))

	_, err := execute(t, "init", "--config", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Nil(t, ta.written)

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)
	assert.NotNil(t, ta.written)
}
