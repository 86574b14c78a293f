package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

func TestStatusCmd_Use(t *testing.T) {
	assert.Equal(t, "status", statusCmd.Use)
}

func TestStatusCmd_ListsStates(t *testing.T) {
	setupCLITest(t, &mockBatchDriver{statuses: []domain.PageStatus{
		{File: "arrays.html", State: domain.StateDone},
		{File: "heaps.html", State: domain.StateRowsExternalized},
	}})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "arrays.html")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "heaps.html")
	assert.Contains(t, out, "rows-externalized")
	assert.Contains(t, out, "1 of 2 documents done\n")
}

func TestStatusCmd_Empty(t *testing.T) {
	setupCLITest(t, &mockBatchDriver{statuses: nil})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

func TestStatusCmd_Error(t *testing.T) {
	setupCLITest(t, &mockBatchDriver{err: domain.ErrCorpusNotFound})

	_, err := execute(t, "status")

	assert.ErrorIs(t, err, domain.ErrCorpusNotFound)
}
