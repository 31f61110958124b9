package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/cache"
	"github.com/Jahanvi0310/google-calendar-apis/internal/nerdfonts"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the calendar integration",
	Long: `Display the current status of gcal-meet including:
- Authorization status
- Calendar and conference solution being scanned
- Last fetch time and cached meetings`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Authorization ===")
	printTokenStatus(tokenStore())
	fmt.Printf("Credentials file: %s\n", cfg.Google.CredentialsFile)

	fmt.Println("\n=== Calendar ===")
	fmt.Printf("Calendar ID: %s\n", cfg.Calendar.ID)
	fmt.Printf("Conference solution: %s\n", cfg.Calendar.ConferenceSolution)
	if cfg.Calendar.MaxPages > 0 {
		fmt.Printf("Page limit: %d\n", cfg.Calendar.MaxPages)
	}

	fmt.Println("\n=== Cache Status ===")
	if !cfg.Cache.Enabled {
		fmt.Printf("%s Cache disabled\n", nerdfonts.InfoCircle)
		return nil
	}

	meetingCache := cache.New(cacheDir)
	if err := meetingCache.Load(); err != nil {
		fmt.Printf("%s Failed to load cache: %v\n", nerdfonts.ExclamationTriangle, err)
		return nil
	}

	fmt.Printf("Cache file: %s\n", meetingCache.GetFilePath())
	fmt.Printf("Cached meetings: %d (%d with a join link)\n", meetingCache.MeetingCount(), meetingCache.LinkCount())

	meetings, lastSync := meetingCache.Snapshot()
	if lastSync.IsZero() {
		fmt.Printf("%s Last fetch: Never\n", nerdfonts.Clock)
		return nil
	}
	fmt.Printf("%s Last fetch: %s (%s ago)\n", nerdfonts.Clock,
		lastSync.Local().Format("2006-01-02 15:04:05"),
		time.Since(lastSync).Truncate(time.Second))

	if meetingCache.HasMeetings() {
		fmt.Println("\n=== Upcoming Meetings ===")
		for _, m := range meetings {
			fmt.Printf("%s %s  %s\n", nerdfonts.MeetingIcon(m.HasLink()), m.Start, m.Summary)
			if m.HasLink() {
				fmt.Printf("  %s\n", m.MeetLink)
			}
		}
	}

	return nil
}
