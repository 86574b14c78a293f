package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driven"
	"github.com/patternpath/pagepatch/internal/extractors/rows"
)

// --- Page fixtures ---

const profileAnchor = `            <div class="h-8 w-8 rounded-full border border-secondary overflow-hidden"></div>
`

func fixtureRow(title, href, difficulty string) string {
	return fmt.Sprintf(`
                <div class="grid grid-cols-[auto_1fr_auto_auto_auto_auto_auto] gap-4 items-center p-4 hover:bg-white/[0.02] transition-colors group">
                    <div class="w-8 flex justify-center">
                        <label class="relative cursor-pointer">
                            <input type="checkbox" class="peer sr-only">
                        </label>
                    </div>
                    <div class="pl-2">
                        <a href="%s" class="text-sm font-medium text-textPrimary hover:text-primary transition-colors">%s</a>
                    </div>
                    <div class="w-20 text-right pr-2">
                        <span class="text-xs font-bold text-diff-easy px-2 py-0.5 rounded border">%s</span>
                    </div>
                </div>`, href, title, difficulty)
}

func threeRows() []string {
	return []string{
		fixtureRow("Two Sum", "https://leetcode.com/problems/two-sum/", "Easy"),
		fixtureRow("3Sum", "https://leetcode.com/problems/3sum/", "Medium"),
		fixtureRow("Trapping Rain Water", "https://leetcode.com/problems/trapping-rain-water/", "Hard"),
	}
}

// lessonPage builds an unpatched lesson page. An empty profile drops the
// user-profile anchor.
func lessonPage(profile string, rowBlocks ...string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Arrays Interview Questions</title>
</head>
<body>
    <nav>
        <div class="flex items-center gap-4">
` + profile + `        </div>
    </nav>
    <main>
        <div class="flex flex-col md:flex-row md:items-start md:justify-between gap-6 mb-8">
            <span class="text-secondary">Arrays</span>
            <h1>Top Array Interview Questions</h1>
            <p>A complete roadmap to mastering Array data structures. From basic linear iteration to complex two-pointer and sliding window problems seen in FAANG interviews.</p>
            <p class="hint">50 problems</p>
        </div>
        <div class="glass-panel p-6 rounded-2xl border border-secondary-dim shadow-xl mb-10 flex flex-col md:flex-row items-center justify-between gap-8">
            <span class="absolute text-sm font-bold text-textPrimary">0%</span>
            <p class="text-xs text-textMuted">0 of 3 Problems Solved</p>
        </div>
        <div class="glass-panel rounded-xl overflow-hidden border border-secondary-dim shadow-xl">
            <div class="divide-y divide-secondary-dim/30">` + strings.Join(rowBlocks, "") + `
            </div>
        </div>
    </main>
    <script>
        // never treat "</body>" inside a script as markup
    </script>
</body>
</html>
`
}

// --- Mock implementations ---

// memCorpus implements driven.CorpusStore in memory.
type memCorpus struct {
	mu      sync.Mutex
	docs    map[string]string
	writes  map[string]int
	missing bool
	readErr map[string]error
}

func newMemCorpus(docs map[string]string) *memCorpus {
	if docs == nil {
		docs = map[string]string{}
	}
	return &memCorpus{docs: docs, writes: map[string]int{}, readErr: map[string]error{}}
}

func (m *memCorpus) Root() string { return "mem" }

func (m *memCorpus) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.missing {
		return nil, domain.ErrCorpusNotFound
	}
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memCorpus) Read(_ context.Context, name string) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[name]; err != nil {
		return domain.Document{}, err
	}
	content, ok := m.docs[name]
	if !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	return domain.NewDocument(name, content), nil
}

func (m *memCorpus) Write(_ context.Context, doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.Name] = doc.Content
	m.writes[doc.Name]++
	return nil
}

func (m *memCorpus) get(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[name]
}

// memArtifacts implements driven.ArtifactStore in memory.
type memArtifacts struct {
	mu        sync.Mutex
	artifacts map[string]domain.DataArtifact
	err       error
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{artifacts: map[string]domain.DataArtifact{}}
}

func (m *memArtifacts) Write(_ context.Context, a domain.DataArtifact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if err := a.Validate(); err != nil {
		return "", err
	}
	m.artifacts[a.PageID] = a
	return "data/" + a.FileName(), nil
}

func (m *memArtifacts) get(pageID string) (domain.DataArtifact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artifacts[pageID]
	return a, ok
}

var (
	_ driven.CorpusStore   = (*memCorpus)(nil)
	_ driven.ArtifactStore = (*memArtifacts)(nil)
)

func newTestRewriter(artifacts driven.ArtifactStore) *PageRewriter {
	return NewPageRewriter(rows.New(""), artifacts, "../data/", "../assets/")
}
