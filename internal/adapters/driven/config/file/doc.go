// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration (pagepatch.toml)
//   - LoadDescriptors: YAML or TOML page descriptor tables
package file
