package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/cache"
	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
	"github.com/Jahanvi0310/google-calendar-apis/internal/security"
)

var (
	cacheDir string
	verbose  bool
	quiet    bool
	cfgFile  string
	cfg      *config.Config

	// Version information
	version    string
	commitHash string
	buildTime  string
)

var rootCmd = &cobra.Command{
	Use:   "gcal-meet",
	Short: "Extract Google Meet links from your Google Calendar",
	Long: `gcal-meet authorizes against Google Calendar with OAuth 2.0, stores the
resulting token locally and lists upcoming events that are hosted on Google Meet,
together with their join links.

Run 'gcal-meet serve' and open http://localhost:3000/auth to authorize in the
browser; the redirect back to the server returns the meetings as JSON.`,
	SilenceUsage: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, commit, buildTimeStr string) {
	version = v
	commitHash = commit
	buildTime = buildTimeStr

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commitHash, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/gcal-meet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: ~/.cache/gcal-meet)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(meetingsCmd)
	rootCmd.AddCommand(calendarsCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: verbose,
		Quiet:   quiet,
	})

	if cacheDir == "" {
		cacheDir = cfg.Cache.Dir
	}
	if cacheDir == "" {
		defaultCacheDir, err := cache.GetDefaultCacheDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default cache directory: %v\n", err)
			os.Exit(1)
		}
		cacheDir = defaultCacheDir
	}
}

func tokenStore() *auth.FileTokenStore {
	return auth.NewFileTokenStore(cfg.Google.TokenFile)
}

// newGateway loads the client secrets; missing or malformed credentials are fatal.
func newGateway(store auth.TokenStore) (*auth.Gateway, error) {
	oauthConfig, err := auth.LoadCredentials(cfg.Google.CredentialsFile, cfg.Google.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth credentials from %s: %w", cfg.Google.CredentialsFile, err)
	}
	httpClient := security.NewHTTPClient(config.AppName+"/"+version, cfg.Google.RequestTimeout)
	return auth.NewGateway(oauthConfig, store, auth.WithHTTPClient(httpClient)), nil
}

// meetingCache returns the cache when enabled in the configuration.
func meetingCache() *cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	c := cache.New(cacheDir)
	if err := c.Load(); err != nil {
		logger.Warn("failed to load cache", "error", err)
	}
	return c
}
