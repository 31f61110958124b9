package main

import (
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"

	"github.com/Jahanvi0310/google-calendar-apis/cmd"
	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// Build-time variables injected by ldflags
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	loadDotEnv()

	cmd.SetVersionInfo(Version, CommitHash, BuildTime)

	if err := cmd.Execute(); err != nil {
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

// loadDotEnv loads GCAL_MEET_* overrides from ./.env, or from .env next to
// config.toml when the working directory has none. Variables already set in
// the environment win.
func loadDotEnv() {
	candidates := []string{".env"}
	if configDir, err := config.GetDefaultConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := gotenv.Load(path); err == nil {
			return
		}
	}
}
