// Package config provides user configuration management for profile-cli.
//
// This package manages a YAML-based settings file holding the API gateway
// connection (base URL, user id, role, timeout), application preferences and
// the gateways found by mDNS discovery. The file follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/profile-cli/config.yaml or $HOME/.config/profile-cli/config.yaml
//   - macOS: $HOME/.config/profile-cli/config.yaml
//   - Windows: %LOCALAPPDATA%\profile-cli\config.yaml
//
// # What Is Stored
//
// Profile form contents are NEVER written to this file. A draft lives only
// as long as the form that edits it.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.API.BaseURL = "http://localhost:8080"
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
