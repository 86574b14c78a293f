package domain

import "fmt"

// ArtifactExt is the file suffix of data artifacts.
const ArtifactExt = ".js"

// DataArtifact is the external data module for one page.
// It is generated output and always replaced wholesale.
type DataArtifact struct {
	// PageID identifies the page the artifact belongs to.
	PageID string

	// Problems are the page's records in display order.
	Problems []RowRecord
}

// FileName returns the artifact's file name within the data directory.
func (a DataArtifact) FileName() string {
	return a.PageID + ArtifactExt
}

// Validate checks the artifact can be written.
func (a DataArtifact) Validate() error {
	if a.PageID == "" {
		return fmt.Errorf("%w: empty page id", ErrInvalidInput)
	}
	for i, p := range a.Problems {
		if p.Index != i {
			return fmt.Errorf("%w: problem %d has index %d", ErrInvalidInput, i, p.Index)
		}
		if !p.Difficulty.Valid() {
			return fmt.Errorf("problem %d: %w: %q", i, ErrInvalidDifficulty, p.Difficulty)
		}
	}
	return nil
}
