// Package logging provides structured logging for profile-cli.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used across the client: API traffic, form interaction
// events and submission outcomes.
//
// # Log Levels
//
//   - Debug: Form events (edit, focus, blur), outgoing requests
//   - Info: API responses, submission outcomes
//   - Warn: Retries, discovery problems
//   - Error: Failures the user cannot recover from in-place
//
// # Silent by Default
//
// The terminal UI owns the screen, so logging is disabled unless
// PROFILE_CLI_LOG_LEVEL is set. Output goes to PROFILE_CLI_LOG_FILE when set,
// otherwise to stderr:
//
//	PROFILE_CLI_LOG_LEVEL=debug PROFILE_CLI_LOG_FILE=/tmp/profile.log profile-cli
//
// # Privacy
//
// Field values are never logged. LogFieldEvent records only the value length
// and MaskIIN is available for the rare place an identifier must appear.
package logging
