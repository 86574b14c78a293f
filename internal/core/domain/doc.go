// Package domain holds the value types pagepatch moves between its layers.
//
// A lesson page travels as a Document. Rewriting it may produce RowRecords,
// which are written out as a DataArtifact, and each pass is summarised in an
// Outcome. PageState and Transition model the ordered patch steps, and
// PageDescriptor carries the per-lesson metadata used by bulk generation.
//
// Everything here is plain data plus the sentinel errors the services wrap.
// The package imports only the standard library; adapters and services
// depend on it, not the other way round.
package domain
