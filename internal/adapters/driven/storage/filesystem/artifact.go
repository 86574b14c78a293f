package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes one JavaScript data module per page.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a store writing into dir.
// The directory is created on first write.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Path returns where the artifact for pageID is written.
func (s *ArtifactStore) Path(pageID string) string {
	return filepath.Join(s.dir, pageID+domain.ArtifactExt)
}

// Write serialises the artifact and replaces any previous version.
func (s *ArtifactStore) Write(ctx context.Context, artifact domain.DataArtifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := EncodeArtifact(artifact)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	path := s.Path(artifact.PageID)
	if err := writeFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	return path, nil
}

// lessonModule is the exported object's shape, as read by the renderer.
type lessonModule struct {
	LessonID string          `json:"lessonId"`
	Problems []lessonProblem `json:"problems"`
}

type lessonProblem struct {
	Title      string `json:"title"`
	Leetcode   string `json:"leetcode"`
	Video      string `json:"video"`
	Difficulty string `json:"difficulty"`
	IsPlus     bool   `json:"isPlus"`
}

// EncodeArtifact renders the module source for an artifact. The module
// has exactly one named export holding the page id and ordered problems.
func EncodeArtifact(artifact domain.DataArtifact) ([]byte, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	module := lessonModule{
		LessonID: artifact.PageID,
		Problems: make([]lessonProblem, len(artifact.Problems)),
	}
	for i, p := range artifact.Problems {
		module.Problems[i] = lessonProblem{
			Title:      p.Title,
			Leetcode:   p.ExternalLink,
			Video:      p.Video,
			Difficulty: string(p.Difficulty),
			IsPlus:     p.Premium,
		}
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(module); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "export const %s = ", domain.ArtifactExport)
	out.Write(bytes.TrimRight(body.Bytes(), "\n"))
	out.WriteString(";\n")
	return out.Bytes(), nil
}
