package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

var cachedOnly bool

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List upcoming Google Meet meetings as JSON",
	Long: `Fetch upcoming events from the configured calendar with the stored token
and print the ones hosted on the configured conference solution as JSON.

Examples:
  gcal-meet meetings              # Fetch from Google Calendar
  gcal-meet meetings --cached     # Print the result of the last fetch`,
	RunE: runMeetings,
}

func init() {
	meetingsCmd.Flags().BoolVar(&cachedOnly, "cached", false, "print the cached result of the last fetch")
}

func runMeetings(cmd *cobra.Command, args []string) error {
	meetingsCache := meetingCache()

	if cachedOnly {
		if meetingsCache == nil {
			return fmt.Errorf("cache is disabled in the configuration")
		}
		meetings, lastSync := meetingsCache.Snapshot()
		if lastSync.IsZero() {
			logger.Warn("cache is empty, run 'gcal-meet meetings' first")
		}
		return writeMeetings(cmd.OutOrStdout(), meetings)
	}

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

	meetings, err := calendar.NewMeetingService(cfg.Calendar).FetchMeetings(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to fetch meetings: %w", err)
	}

	if meetingsCache != nil {
		meetingsCache.Update(cfg.Calendar.ID, meetings)
		if err := meetingsCache.Save(); err != nil {
			logger.Warn("failed to save cache", "error", err)
		}
	}

	return writeMeetings(cmd.OutOrStdout(), meetings)
}

func writeMeetings(w io.Writer, meetings []calendar.Meeting) error {
	if meetings == nil {
		meetings = []calendar.Meeting{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(meetings)
}
