// Package ui provides terminal output components for the profile-cli
// commands that do not run the interactive form.
//
// Components follow a "print once and exit" pattern: a Header naming the
// operation, then a Result box (success, failure or warning). A Printer
// writes them to any io.Writer so commands can be tested against a buffer.
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Submit Profile", "profile-cli submit", []ui.Detail{
//	    {Key: "Gateway", Value: baseURL},
//	})
//	p.PrintSuccess("Profile saved", []ui.Detail{{Key: "IIN", Value: masked}})
//
// # Logging Integration
//
// Logging is controlled by PROFILE_CLI_LOG_LEVEL. When unset zap stays
// silent so these boxes are the only output.
package ui
