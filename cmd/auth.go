package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/nerdfonts"
)

var (
	authCode   string
	revokeFlag bool
	statusOnly bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Calendar authorization",
	Long: `Authorize gcal-meet against Google Calendar using the OAuth 2.0
authorization code flow.

Without flags the authorization URL is printed. Open it, grant access, and
pass the code from the redirect back with --code. Running 'gcal-meet serve'
instead lets the redirect land on the server, which exchanges the code itself.

Examples:
  gcal-meet auth                      # Print the authorization URL
  gcal-meet auth --code 4/0Ab...      # Exchange a code and store the token
  gcal-meet auth --status             # Check authorization status
  gcal-meet auth --revoke             # Remove the stored token`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().StringVar(&authCode, "code", "", "authorization code to exchange for a token")
	authCmd.Flags().BoolVar(&revokeFlag, "revoke", false, "remove the stored token")
	authCmd.Flags().BoolVar(&statusOnly, "status", false, "check authorization status only")
}

func runAuth(cmd *cobra.Command, args []string) error {
	store := tokenStore()

	// Handle status check only
	if statusOnly {
		printTokenStatus(store)
		return nil
	}

	// Handle revoke (clear local token)
	if revokeFlag {
		fmt.Printf("%s Clearing authorization...\n", nerdfonts.InfoCircle)
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear authorization: %w", err)
		}
		fmt.Printf("%s Authorization cleared successfully\n", nerdfonts.CheckCircle)
		return nil
	}

	gateway, err := newGateway(store)
	if err != nil {
		return err
	}

	if authCode == "" {
		fmt.Println("Authorize this app by visiting this URL:")
		fmt.Println(gateway.AuthCodeURL())
		fmt.Println()
		fmt.Println("Then run 'gcal-meet auth --code <code>' with the code from the redirect.")
		return nil
	}

	if _, err := gateway.Exchange(cmd.Context(), authCode); err != nil {
		var exchangeErr *auth.ExchangeError
		if errors.As(err, &exchangeErr) {
			return fmt.Errorf("authorization failed: %w", err)
		}
		return err
	}

	fmt.Printf("%s Authorization successful, token stored in %s\n", nerdfonts.CheckCircle, store.Path())
	return nil
}

func printTokenStatus(store *auth.FileTokenStore) {
	state, err := store.Describe()
	switch {
	case errors.Is(err, auth.ErrNoToken):
		fmt.Printf("%s Authorization: Required (run 'gcal-meet auth')\n", nerdfonts.ExclamationCircle)
	case err != nil:
		fmt.Printf("%s Authorization: Unreadable token (%v)\n", nerdfonts.ExclamationTriangle, err)
	case store.HasValidToken():
		fmt.Printf("%s Authorization: %s\n", nerdfonts.CheckCircle, state)
	default:
		fmt.Printf("%s Authorization: %s\n", nerdfonts.ExclamationCircle, state)
	}
	fmt.Printf("Token file: %s\n", store.Path())
}
