package driven

import (
	"context"

	"github.com/patternpath/pagepatch/internal/core/domain"
)

// ArtifactStore persists page data artifacts.
type ArtifactStore interface {
	// Write replaces the artifact for its page and returns the path written.
	// Existing content is overwritten, never merged.
	Write(ctx context.Context, artifact domain.DataArtifact) (string, error)
}
