package domain

// Generated markup contract shared with the browser renderer.
// These values must be reproduced exactly.
const (
	// MountID is the identifier of the container rows are rendered into.
	MountID = "problems-table-body"

	// CheckboxClass is the class token every problem checkbox carries.
	CheckboxClass = "problem-checkbox"

	// ProgressPercentID identifies the percent display.
	ProgressPercentID = "progress-percent"

	// ProgressCountID identifies the solved-count display.
	ProgressCountID = "progress-count"

	// CreditsValueClass is the class token of the credits display value.
	CreditsValueClass = "credits-display-value"

	// ArtifactExport is the single named export of a data artifact.
	ArtifactExport = "lessonData"
)
