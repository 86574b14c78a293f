package domain

// PageDescriptor is static metadata for one lesson page.
// It drives bulk generation of new pages from a master template.
type PageDescriptor struct {
	// ID is the page identifier and file stem.
	ID string `yaml:"id" toml:"id"`

	// DisplayName is the human-readable pattern name.
	DisplayName string `yaml:"name" toml:"name"`

	// CountHint summarises the difficulty spread, e.g. "5 Easy • 8 Med • 5 Hard".
	CountHint string `yaml:"hint" toml:"hint"`
}

// FileName returns the document file name for the descriptor.
func (p PageDescriptor) FileName() string {
	return p.ID + DocumentExt
}

// FindDescriptor returns the descriptor with the given id.
func FindDescriptor(descriptors []PageDescriptor, id string) (PageDescriptor, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return PageDescriptor{}, false
}

// DefaultDescriptors returns the built-in pattern table.
func DefaultDescriptors() []PageDescriptor {
	return []PageDescriptor{
		{"arrays", "Arrays & Hashing", "8 Easy • 12 Med • 7 Hard"},
		{"two-pointers", "Two Pointers", "5 Easy • 8 Med • 5 Hard"},
		{"sliding-window", "Sliding Window", "3 Easy • 7 Med • 2 Hard"},
		{"fast-slow", "Fast & Slow Pointers", "1 Easy • 4 Med • 2 Hard"},
		{"intervals", "Intervals", "2 Easy • 5 Med • 1 Hard"},
		{"linked-list", "Linked List", "6 Easy • 8 Med • 4 Hard"},
		{"heaps", "Heaps / Priority Queue", "2 Easy • 9 Med • 4 Hard"},
		{"k-way-merge", "K-Way Merge", "0 Easy • 4 Med • 3 Hard"},
		{"top-k", "Top K Elements", "1 Easy • 6 Med • 2 Hard"},
		{"binary-search", "Binary Search", "4 Easy • 10 Med • 3 Hard"},
		{"dynamic-programming", "Dynamic Programming", "5 Easy • 15 Med • 10 Hard"},
		{"greedy", "Greedy", "3 Easy • 12 Med • 4 Hard"},
		{"backtracking", "Backtracking", "1 Easy • 8 Med • 3 Hard"},
		{"cyclic-sort", "Cyclic Sort", "1 Easy • 4 Med • 2 Hard"},
		{"topological-sort", "Topological Sort", "0 Easy • 5 Med • 3 Hard"},
		{"sort-search", "Sorting & Searching", "5 Easy • 5 Med • 0 Hard"},
		{"matrices", "Matrices", "3 Easy • 8 Med • 3 Hard"},
		{"stacks", "Stacks", "4 Easy • 9 Med • 5 Hard"},
		{"graphs", "Graphs", "3 Easy • 12 Med • 8 Hard"},
		{"tree-dfs", "Tree DFS", "4 Easy • 8 Med • 3 Hard"},
		{"tree-bfs", "Tree BFS", "2 Easy • 6 Med • 2 Hard"},
		{"trie", "Trie", "0 Easy • 5 Med • 2 Hard"},
		{"hashmap", "Hash Maps & Sets", "5 Easy • 10 Med • 5 Hard"},
		{"frequency-tracking", "Frequency Tracking", "2 Easy • 4 Med • 1 Hard"},
		{"union-find", "Union Find", "0 Easy • 6 Med • 4 Hard"},
		{"custom-ds", "Custom Data Structures", "1 Easy • 3 Med • 2 Hard"},
		{"bitwise", "Bitwise Manipulation", "4 Easy • 6 Med • 3 Hard"},
		{"math-geometry", "Math & Geometry", "5 Easy • 7 Med • 2 Hard"},
		{"segment-tree", "Segment Tree", "0 Easy • 2 Med • 5 Hard"},
		{"extra-problems", "Extra Problems", "10 Easy • 10 Med • 10 Hard"},
	}
}
