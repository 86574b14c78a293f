package driven

import "github.com/patternpath/pagepatch/internal/core/domain"

// RowExtractor turns inline row markup into ordered records.
type RowExtractor interface {
	// Extract returns one record per row found in text, indexed by position.
	// Text with no rows yields the placeholder set.
	Extract(text string) ([]domain.RowRecord, error)
}
