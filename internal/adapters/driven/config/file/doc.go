// Package file provides file-based configuration for the autoprofile module.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LoadSettings: maps configuration keys onto domain.Settings
//   - Watcher: reloads settings when the configuration file changes
package file
