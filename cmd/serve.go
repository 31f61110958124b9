package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
	"github.com/Jahanvi0310/google-calendar-apis/internal/server"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authorization and meetings HTTP server",
	Long: `Start the HTTP server.

Routes:
  GET /auth     page with the Google authorization link
  GET /         OAuth redirect target; exchanges ?code=... for a token, stores it
                and responds with the upcoming Google Meet meetings as JSON
  GET /health   liveness check

The redirect URI registered for the OAuth client must point at this server.

Examples:
  gcal-meet serve                 # listen on localhost:3000
  gcal-meet serve --port 8080     # listen on another port`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (overrides server.host)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gateway, err := newGateway(tokenStore())
	if err != nil {
		return err
	}

	meetings := calendar.NewMeetingService(cfg.Calendar)
	srv := server.New(cfg, gateway, meetings, meetingCache())

	logger.Info("starting server",
		"version", version,
		"addr", cfg.Server.Addr(),
		"calendar_id", cfg.Calendar.ID,
		"conference_solution", cfg.Calendar.ConferenceSolution,
		"token_file", cfg.Google.TokenFile,
	)
	fmt.Printf("Server is running at http://%s (authorize at http://%s/auth)\n", cfg.Server.Addr(), cfg.Server.Addr())

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
