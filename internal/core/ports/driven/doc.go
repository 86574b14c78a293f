// Package driven lists what the services need from the outside world:
// somewhere to read and write pages, somewhere to put data artifacts,
// a way to parse inline rows, and the configuration file.
//
// # Interfaces
//
//   - CorpusStore: Lists, reads and writes lesson pages
//   - ArtifactStore: Writes page data artifacts
//   - RowExtractor: Turns inline row markup into records
//   - ConfigStore: Reads and writes the TOML configuration file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
