package domain

import "path/filepath"

// Config holds the settings for a batch run.
// It is resolved once at process start and passed explicitly.
type Config struct {
	// CorpusDir is the directory holding the lesson pages.
	CorpusDir string

	// DataDir is the directory data artifacts are written to.
	DataDir string

	// Exclusions lists document file names that are never touched.
	Exclusions []string

	// Concurrency bounds how many documents are processed at once.
	Concurrency int

	// DataImportPrefix is the path the render script imports artifacts from.
	DataImportPrefix string

	// AssetsPrefix is the path activation scripts are referenced from.
	AssetsPrefix string

	// Steps selects the transitions to run. Empty means the default pipeline.
	Steps []Transition

	// TemplateName is the master document used for bulk generation.
	TemplateName string

	// DescriptorsPath is an optional YAML or TOML descriptor table.
	DescriptorsPath string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		CorpusDir:        "patterns",
		DataDir:          "data",
		Exclusions:       []string{"arrays.html"},
		Concurrency:      1,
		DataImportPrefix: "../data/",
		AssetsPrefix:     "../assets/",
		TemplateName:     "arrays.html",
	}
}

// IsExcluded reports whether the named document is on the exclusion list.
// Entries may be given with or without the document suffix.
func (c Config) IsExcluded(name string) bool {
	base := filepath.Base(name)
	for _, ex := range c.Exclusions {
		if ex == base || ex+DocumentExt == base {
			return true
		}
	}
	return false
}

// Transitions returns the configured steps or the default pipeline.
func (c Config) Transitions() []Transition {
	if len(c.Steps) == 0 {
		return PipelineTransitions()
	}
	return c.Steps
}
