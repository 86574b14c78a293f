package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/extractors/rows"
	"github.com/patternpath/pagepatch/internal/markup"
)

func masterPage() domain.Document {
	return domain.NewDocument("arrays.html", lessonPage(profileAnchor, threeRows()...))
}

var (
	masterDesc  = &domain.PageDescriptor{ID: "arrays", DisplayName: "Arrays", CountHint: "50 problems"}
	twoPointers = domain.PageDescriptor{ID: "two-pointers", DisplayName: "Two Pointers", CountHint: "18 problems"}
)

func TestGenerator_RenderSubstitutesLiterals(t *testing.T) {
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")

	doc, artifact, err := g.Render(masterPage(), masterDesc, twoPointers)

	require.NoError(t, err)
	assert.Nil(t, artifact)
	assert.Equal(t, "two-pointers.html", doc.Name)
	assert.Equal(t, "two-pointers", doc.PageID)
	assert.Contains(t, doc.Content, "<title>Two Pointers Interview Questions</title>")
	assert.Contains(t, doc.Content, `<span class="text-secondary">Two Pointers</span>`)
	assert.Contains(t, doc.Content, "<h1>Two Pointers Interview Questions</h1>")
	assert.Contains(t, doc.Content, "Master the Two Pointers pattern.")
	assert.Contains(t, doc.Content, "18 problems")
	assert.NotContains(t, doc.Content, "Arrays")
	assert.NotContains(t, doc.Content, "50 problems")
}

func TestGenerator_RenderInlinePlaceholders(t *testing.T) {
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")

	doc, _, err := g.Render(masterPage(), masterDesc, twoPointers)
	require.NoError(t, err)

	assert.NotContains(t, doc.Content, "Two Sum")
	assert.Equal(t, 5, strings.Count(doc.Content, rows.DefaultRowStart))

	// Generated rows must read back as the same placeholder records.
	start, ok := markup.Locate(doc.Content, rowContainer)
	require.True(t, ok)
	block, err := markup.ClosingPair(doc.Content, start.Start)
	require.NoError(t, err)
	records, err := rows.New("").Extract(block.Text(doc.Content))
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceholderRecords(), records)
}

func TestGenerator_RenderFromExternalizedMaster(t *testing.T) {
	r := newTestRewriter(newMemArtifacts())
	master := masterPage()
	master.Content = rewrite(t, r, master.Content, RewriteOptions{}).Document.Content
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")

	doc, artifact, err := g.Render(master, masterDesc, twoPointers)

	require.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, "two-pointers", artifact.PageID)
	assert.Equal(t, domain.PlaceholderRecords(), artifact.Problems)
	assert.Contains(t, doc.Content, `from '../data/two-pointers.js'`)
	assert.NotContains(t, doc.Content, "arrays.js")
	assert.Equal(t, domain.StateDone, r.Observe(doc.Content))
}

func TestGenerator_RenderEscapesDisplayName(t *testing.T) {
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")

	doc, _, err := g.Render(masterPage(), nil, domain.PageDescriptor{ID: "stacks", DisplayName: "Stacks & Queues"})

	require.NoError(t, err)
	assert.Contains(t, doc.Content, "<title>Stacks &amp; Queues Interview Questions</title>")
	assert.Contains(t, doc.Content, "50 problems")
}

func TestGenerator_RenderInvalidDescriptor(t *testing.T) {
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")

	tests := []struct {
		name string
		d    domain.PageDescriptor
	}{
		{"empty id", domain.PageDescriptor{DisplayName: "X"}},
		{"path id", domain.PageDescriptor{ID: "../x", DisplayName: "X"}},
		{"empty name", domain.PageDescriptor{ID: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := g.Render(masterPage(), masterDesc, tt.d)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGenerator_RenderMissingContainer(t *testing.T) {
	g := NewGenerator(DefaultTemplateLiterals(), "../data/")
	master := domain.NewDocument("arrays.html", "<html><body></body></html>")

	_, _, err := g.Render(master, nil, twoPointers)

	assert.ErrorIs(t, err, domain.ErrAnchorNotFound)
}
