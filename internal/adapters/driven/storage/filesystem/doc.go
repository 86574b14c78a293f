// Package filesystem provides disk-backed implementations of the corpus
// and artifact ports.
//
// Adapters:
//   - CorpusStore: lists, reads and rewrites lesson pages in one directory
//   - ArtifactStore: writes page data artifacts as JavaScript modules
package filesystem
