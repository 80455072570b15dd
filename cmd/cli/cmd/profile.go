package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile of the signed-in user",
	Long: `Fetches the profile of the user owning the session given by --cookie
(or the api.cookie config key). Prints "Not signed in." when the backend
does not recognise the session.`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	RootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	profile, err := client.GetProfile(cmd.Context())
	if err != nil {
		logger.WithError(err).Error("Profile request failed")
		return fmt.Errorf("profile request failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if profile == nil {
		fmt.Fprintln(out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(out, "Name: %s\n", profile.Name)
	fmt.Fprintf(out, "Username: %s\n", profile.Username)
	if len(profile.Roles) == 0 {
		fmt.Fprintln(out, "Roles: (none)")
	} else {
		fmt.Fprintf(out, "Roles: %s\n", strings.Join(profile.Roles, ", "))
	}
	return nil
}
