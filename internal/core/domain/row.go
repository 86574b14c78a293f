package domain

import "fmt"

// Difficulty is the tier of a problem.
type Difficulty string

const (
	// DifficultyEasy is the lowest tier.
	DifficultyEasy Difficulty = "Easy"

	// DifficultyMedium is the middle tier.
	DifficultyMedium Difficulty = "Medium"

	// DifficultyHard is the highest tier.
	DifficultyHard Difficulty = "Hard"
)

// ParseDifficulty validates a difficulty label.
// Anything outside {Easy, Medium, Hard} is rejected with ErrInvalidDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}

// ColourClass returns the design-system class stem for the tier.
func (d Difficulty) ColourClass() string {
	switch d {
	case DifficultyMedium:
		return "diff-medium"
	case DifficultyHard:
		return "diff-hard"
	default:
		return "diff-easy"
	}
}

// RowRecord is one problem entry on a lesson page.
// Records are ordered; a record's index is its position in the page's sequence.
type RowRecord struct {
	// Index is the 0-based ordinal of the record within its page.
	Index int

	// Title is the problem title.
	Title string

	// ExternalLink is the practice link (empty when unknown).
	ExternalLink string

	// Video is the video solution link (empty when unknown).
	Video string

	// Difficulty is the problem tier.
	Difficulty Difficulty

	// Premium marks problems that require a paid plan.
	Premium bool
}

// placeholderTiers is the fixed tier order of skeleton pages.
var placeholderTiers = []Difficulty{
	DifficultyEasy,
	DifficultyEasy,
	DifficultyMedium,
	DifficultyMedium,
	DifficultyHard,
}

// PlaceholderRecords returns the five skeleton records used for pages
// without real content yet: two Easy, two Medium, one Hard.
func PlaceholderRecords() []RowRecord {
	records := make([]RowRecord, len(placeholderTiers))
	for i, tier := range placeholderTiers {
		records[i] = RowRecord{
			Index:      i,
			Title:      fmt.Sprintf("Problem %d – Placeholder", i+1),
			Difficulty: tier,
		}
	}
	return records
}

// Reindex assigns each record its position in the slice.
// Position is the single source of truth for the index.
func Reindex(records []RowRecord) []RowRecord {
	for i := range records {
		records[i].Index = i
	}
	return records
}
