package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studentportal/profilecli/internal/discovery"
	"github.com/studentportal/profilecli/internal/logging"
	"github.com/studentportal/profilecli/internal/profile"
	"github.com/studentportal/profilecli/internal/studentapi"
	"github.com/studentportal/profilecli/internal/tui"
	"github.com/studentportal/profilecli/internal/ui"
)

// Persistent flags
var (
	apiURL         string
	userID         string
	updateExisting bool
	outputFormat   string
)

// Command flags
var (
	scanTimeout int
	noRemember  bool
	submitDraft profile.ProfileDraft
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Student service base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().StringVar(&userID, "user-id", "", "User id sent as X-User-ID (overrides api.user_id)")
	rootCmd.PersistentFlags().BoolVar(&updateExisting, "update", false, "Update the existing profile instead of creating one")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

// formCmd launches the interactive TUI form
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Launch the interactive profile form",
	Long: `Launch an interactive form for completing your profile.

Move between fields with tab and shift+tab, submit with ctrl+s or by
pressing enter on the submit button. Errors are shown above the form.

With --update the form is prefilled with your stored profile.`,
	Example: `  # Launch the form
  profile-cli form
  # Or simply (form is default):
  profile-cli

  # Edit an existing profile on a specific gateway
  profile-cli --api http://10.0.0.5:8080 --update`,
	RunE: runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(ctx, settings)
	if err != nil {
		return err
	}

	var initial profile.ProfileDraft
	if client.UpdateExisting {
		stored, err := client.GetProfile(ctx)
		switch {
		case err == nil:
			initial = stored.Draft()
		case studentapi.IsNotFoundError(err):
			logging.Info("No stored profile to prefill")
		default:
			return fmt.Errorf("failed to load profile: %w", err)
		}
	}

	final, err := tui.Run(tui.Options{
		Submitter: client,
		Initial:   initial,
		Gateway:   client.BaseURL,
		Context:   ctx,
	})
	if err != nil {
		return err
	}

	if final.LastOutcome.Succeeded() {
		ui.NewPrinter(os.Stdout).PrintSuccess("Profile saved", draftDetails(final.Saved))
	}
	return nil
}

// submitCmd submits a profile without the TUI
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a profile non-interactively",
	Long: `Validate and submit a profile given on the command line.

The same rules as the interactive form apply: the IIN must be exactly 12
characters, and last name, first name, phone and date of birth are
required. Middle name is optional.`,
	Example: `  # Create a profile
  profile-cli submit --iin 990101300123 --last-name Doe --first-name John \
    --phone "+7 700 123 45 67" --dob 1999-01-01

  # Update an existing profile
  profile-cli submit --update --iin 990101300123 --last-name Doe \
    --first-name John --middle-name Michael --phone "+7 700 123 45 67" --dob 1999-01-01`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitDraft.IIN, "iin", "", "Individual identification number (12 digits)")
	submitCmd.Flags().StringVar(&submitDraft.LastName, "last-name", "", "Last name")
	submitCmd.Flags().StringVar(&submitDraft.FirstName, "first-name", "", "First name")
	submitCmd.Flags().StringVar(&submitDraft.MiddleName, "middle-name", "", "Middle name (optional)")
	submitCmd.Flags().StringVar(&submitDraft.Phone, "phone", "", "Phone number")
	submitCmd.Flags().StringVar(&submitDraft.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(os.Stdout)
	printer.PrintHeader("Submit Profile", "profile-cli submit", []ui.Detail{
		{Key: "Gateway", Value: client.BaseURL},
		{Key: "User ID", Value: client.UserID.String()},
		{Key: "Mode", Value: submitMode(client.UpdateExisting)},
		{Key: "IIN", Value: logging.MaskIIN(submitDraft.IIN)},
	})

	outcome := submitProfile(cmd.Context(), client, submitDraft)
	if !outcome.Succeeded() {
		printer.PrintError("Profile not saved", outcome.Err, troubleshooting(outcome.Err))
		return fmt.Errorf("submit failed: %s", outcome.Message())
	}

	printer.PrintSuccess("Profile saved", draftDetails(submitDraft))
	return nil
}

// submitProfile runs one attempt through a fresh controller, entering the
// values the same way the form does
func submitProfile(ctx context.Context, s profile.Submitter, d profile.ProfileDraft) profile.Outcome {
	ctrl := profile.NewController()
	for _, f := range profile.Fields {
		ctrl.SetField(f, d.Get(f))
	}

	outcome := ctrl.Submit(ctx, s)
	logging.Info("Submit command finished",
		zap.String("iin", logging.MaskIIN(d.IIN)),
		zap.String("result", outcome.Result.String()),
	)
	return outcome
}

func submitMode(update bool) string {
	if update {
		return "update (PUT)"
	}
	return "create (POST)"
}

// troubleshooting turns a rejected outcome into hint lines for the error box
func troubleshooting(err error) []string {
	var vErr *profile.ValidationError
	if errors.As(err, &vErr) {
		if vErr.Kind == profile.KindIIN {
			return []string{"Pass exactly 12 characters with --iin"}
		}
		return []string{"Required: --last-name, --first-name, --phone, --dob"}
	}

	var sErr *profile.SubmissionError
	if errors.As(err, &sErr) && sErr.Err != nil {
		return strings.Split(studentapi.GetTroubleshootingHint(sErr.Err), "\n")
	}
	return nil
}

// showCmd prints the stored profile
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	Long: `Fetch and display the profile stored by the student service for
the configured user id.`,
	Example: `  # Show profile
  profile-cli show

  # JSON output for scripting
  profile-cli show --format json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	stored, err := client.GetProfile(cmd.Context())
	if err != nil {
		if outputFormat != "json" {
			ui.NewPrinter(os.Stdout).PrintError("Failed to load profile", errors.New(studentapi.GetShortErrorMessage(err)),
				strings.Split(studentapi.GetTroubleshootingHint(err), "\n"))
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	// Display profile based on format
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(stored, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		details := append([]ui.Detail{
			{Key: "Name", Value: stored.FullName()},
			{Key: "Profile ID", Value: stored.ID},
		}, draftDetails(stored.Draft())...)
		if !stored.UpdatedAt.IsZero() {
			details = append(details, ui.Detail{Key: "Updated", Value: stored.UpdatedAt.Local().Format(time.RFC1123)})
		}
		ui.NewPrinter(os.Stdout).PrintSuccess("Student profile", details)
	}

	return nil
}

// healthCmd checks the gateway
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the student service is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), settings)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(os.Stdout)
	status, err := client.Health(cmd.Context())
	if err != nil {
		printer.PrintError("Gateway unreachable", errors.New(studentapi.GetShortErrorMessage(err)),
			strings.Split(studentapi.GetTroubleshootingHint(err), "\n"))
		return fmt.Errorf("health check failed: %w", err)
	}

	details := []ui.Detail{
		{Key: "Gateway", Value: client.BaseURL},
		{Key: "Service", Value: status.Service},
		{Key: "Status", Value: status.Status},
	}
	if !status.OK() {
		printer.PrintWarning("Gateway reports a problem", details)
		return fmt.Errorf("gateway status %q", status.Status)
	}
	printer.PrintSuccess("Gateway is healthy", details)
	return nil
}

// discoverCmd browses for gateways on the LAN
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find student service gateways on the network",
	Long: `Browse for student service gateways using mDNS/DNS-SD discovery.

Gateways advertise the ` + discovery.ServiceType + ` service. Every gateway found is
remembered in the config file, and the one seen last is used when
api.base_url is empty.`,
	Example: `  # Scan for 5 seconds (default)
  profile-cli discover

  # Longer scan without touching the config file
  profile-cli discover --timeout 15 --no-remember`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
	discoverCmd.Flags().BoolVar(&noRemember, "no-remember", false, "Do not save discovered gateways to the config file")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for gateways (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	gateways, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(gateways) == 0 {
		fmt.Println("No gateways found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the gateway is running and advertising over mDNS")
		fmt.Println("  - Verify you are on the same network as the gateway")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --api to specify the URL manually if discovery fails")
		return nil
	}

	fmt.Printf("Found %d gateway(s):\n\n", len(gateways))

	for i, gw := range gateways {
		fmt.Printf("%d. %s\n", i+1, gw.Instance)
		fmt.Printf("   URL:     %s\n", gw.BaseURL())
		fmt.Printf("   Host:    %s\n", gw.Hostname)
		if v := gw.Version(); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		fmt.Println()
	}

	if !noRemember {
		if err := rememberGateways(gateways); err != nil {
			return fmt.Errorf("failed to save gateways: %w", err)
		}
		fmt.Println("Gateways saved to the config file.")
	}

	fmt.Println("Use 'profile-cli --api <url>' to open the form against a gateway")

	return nil
}

// draftDetails lists the draft fields in form order for result boxes
func draftDetails(d profile.ProfileDraft) []ui.Detail {
	details := make([]ui.Detail, 0, len(profile.FieldSpecs))
	for _, spec := range profile.FieldSpecs {
		value := d.Get(spec.Field)
		if spec.Field == profile.FieldIIN {
			value = logging.MaskIIN(value)
		}
		if value == "" {
			value = "-"
		}
		details = append(details, ui.Detail{Key: spec.Label, Value: value})
	}
	return details
}
