package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/nerdfonts"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List available calendars",
	Long: `List all calendars accessible with your Google account.

This command shows the ID of every calendar you have access to. Put the one you
want to scan for meetings into the calendar.id setting of the config file.

Example:
  gcal-meet calendars`,
	RunE: runCalendars,
}

func runCalendars(cmd *cobra.Command, args []string) error {
	gateway, err := newGateway(tokenStore())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := gateway.StoredClient(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			return fmt.Errorf("authorization required. Run 'gcal-meet auth' first")
		}
		return err
	}

	calendars, err := calendar.ListCalendars(ctx, client)
	if err != nil {
		return err
	}

	fmt.Println("=== Available Calendars ===")
	for _, cal := range calendars {
		icon := nerdfonts.Calendar
		if cal.Primary {
			icon = nerdfonts.CheckCircle + " " + nerdfonts.Calendar
		}

		fmt.Printf("%s %s\n", icon, cal.Summary)
		fmt.Printf("  ID: %s\n", cal.ID)
		if cal.Description != "" {
			fmt.Printf("  Description: %s\n", cal.Description)
		}
		fmt.Printf("  Access Role: %s\n", cal.AccessRole)
		if cal.Primary {
			fmt.Printf("  Primary: Yes\n")
		}
		fmt.Println()
	}

	fmt.Printf("Total calendars: %d\n", len(calendars))
	fmt.Printf("Currently configured: %s\n", cfg.Calendar.ID)

	return nil
}
