package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studentportal/profilecli/internal/config"
	"github.com/studentportal/profilecli/internal/ui"
)

var forceInit bool

// configCmd groups the config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the profile-cli configuration file.

The file lives in the OS config directory (for example
~/.config/profile-cli/config.yaml) and holds the API settings and
remembered gateways. Command-line flags override its values.`,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer := ui.NewPrinter(os.Stdout)

		path, created, err := config.CreateDefaultConfig()
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		if created {
			printer.PrintSuccess("Config created", []ui.Detail{{Key: "Path", Value: path}})
			return nil
		}

		if !forceInit {
			printer.PrintWarning("Config already exists", []ui.Detail{
				{Key: "Path", Value: path},
				{Key: "Hint", Value: "use --force to overwrite"},
			})
			return nil
		}

		ok := printer.Confirm(os.Stdin, "Overwrite configuration",
			[]string{
				"A new user id will be generated",
				"Remembered gateways will be forgotten",
			},
			"Overwrite "+path+"?")
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if err := config.NewSettings().SaveFile(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		printer.PrintSuccess("Config reset to defaults", []ui.Detail{{Key: "Path", Value: path}})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration as YAML after applying command-line flags.
The bearer token is masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		shown := *settings
		if settings.API != nil && settings.API.Token != "" {
			api := *settings.API
			api.Token = "********"
			shown.API = &api
		}

		data, err := shown.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}
