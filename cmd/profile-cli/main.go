// Profile-cli completes a student's identity profile against the student
// service.
//
// It provides an interactive form, a non-interactive submit command, and
// helpers to read back the stored profile, check the gateway and find
// gateways on the local network.
//
// Usage:
//
//	profile-cli [command] [flags]
//
// Running without arguments launches the interactive form.
// See 'profile-cli --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studentportal/profilecli/internal/logging"
	"github.com/studentportal/profilecli/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "profile-cli",
	Short: "Student Profile Utility",
	Long: `A terminal client for completing your student profile.

Collects your IIN, name, phone number and date of birth, validates them
and saves them to the student service.

If no command is specified, the interactive form will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Silent by default; set PROFILE_CLI_LOG_LEVEL=debug to see detailed logs
		if err := logging.InitializeFromEnv(); err != nil {
			// GetLogger falls back to a no-op logger
			_ = err
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the form when no subcommand provided
		return runForm(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("profile-cli %s (commit: %s)\n", version.Version, version.Commit)
	},
}
