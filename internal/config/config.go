package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AppName   = "gcal-meet"
	EnvPrefix = "GCAL_MEET"

	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Google   GoogleConfig   `mapstructure:"google"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type GoogleConfig struct {
	CredentialsFile string        `mapstructure:"credentials_file"`
	TokenFile       string        `mapstructure:"token_file"`
	Scopes          []string      `mapstructure:"scopes"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// CalendarConfig selects which events the meetings pipeline keeps.
// MaxPages of zero means pagination is unbounded.
type CalendarConfig struct {
	ID                 string `mapstructure:"id"`
	ConferenceSolution string `mapstructure:"conference_solution"`
	EntryPointType     string `mapstructure:"entry_point_type"`
	MaxPages           int    `mapstructure:"max_pages"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaultConfig = Config{
	Server: ServerConfig{
		Host:         "localhost",
		Port:         3000,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	},
	Google: GoogleConfig{
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		Scopes:          []string{ScopeCalendarReadonly},
		RequestTimeout:  30 * time.Second,
	},
	Calendar: CalendarConfig{
		ID:                 "primary",
		ConferenceSolution: "Google Meet",
		EntryPointType:     "video",
		MaxPages:           0,
	},
	Cache: CacheConfig{
		Enabled: true,
		Dir:     "",
	},
	Log: LogConfig{
		Level:  "info",
		Format: "text",
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	cfg.Google.Scopes = append([]string(nil), defaultConfig.Google.Scopes...)
	return &cfg
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigName("config")

	if configPath == "" {
		configDir, err := getDefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		configPath = configDir
	}

	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := createDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		// Defaults and environment still apply when the new file is unreadable.
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Google.CredentialsFile) == "" {
		return errors.New("google.credentials_file must be set")
	}
	if strings.TrimSpace(c.Google.TokenFile) == "" {
		return errors.New("google.token_file must be set")
	}
	if len(c.Google.Scopes) == 0 {
		return errors.New("google.scopes must not be empty")
	}
	if strings.TrimSpace(c.Calendar.ID) == "" {
		return errors.New("calendar.id must be set")
	}
	if c.Calendar.ConferenceSolution == "" {
		return errors.New("calendar.conference_solution must be set")
	}
	if c.Google.RequestTimeout < 0 {
		return fmt.Errorf("google.request_timeout must not be negative: %s", c.Google.RequestTimeout)
	}
	if c.Calendar.MaxPages < 0 {
		return fmt.Errorf("calendar.max_pages must not be negative: %d", c.Calendar.MaxPages)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", defaultConfig.Server.Host)
	v.SetDefault("server.port", defaultConfig.Server.Port)
	v.SetDefault("server.read_timeout", defaultConfig.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaultConfig.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", defaultConfig.Server.IdleTimeout)

	// Google
	v.SetDefault("google.credentials_file", defaultConfig.Google.CredentialsFile)
	v.SetDefault("google.token_file", defaultConfig.Google.TokenFile)
	v.SetDefault("google.scopes", defaultConfig.Google.Scopes)
	v.SetDefault("google.request_timeout", defaultConfig.Google.RequestTimeout)

	// Calendar
	v.SetDefault("calendar.id", defaultConfig.Calendar.ID)
	v.SetDefault("calendar.conference_solution", defaultConfig.Calendar.ConferenceSolution)
	v.SetDefault("calendar.entry_point_type", defaultConfig.Calendar.EntryPointType)
	v.SetDefault("calendar.max_pages", defaultConfig.Calendar.MaxPages)

	// Cache
	v.SetDefault("cache.enabled", defaultConfig.Cache.Enabled)
	v.SetDefault("cache.dir", defaultConfig.Cache.Dir)

	// Log
	v.SetDefault("log.level", defaultConfig.Log.Level)
	v.SetDefault("log.format", defaultConfig.Log.Format)
}

func createDefaultConfig(configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.toml")

	if _, err := os.Stat(configFile); err == nil {
		return nil // Already exists
	}

	configContent := `# gcal-meet configuration

[server]
host = "localhost"
port = 3000
read_timeout = "15s"
write_timeout = "60s"
idle_timeout = "120s"

[google]
credentials_file = "credentials.json"  # OAuth client secrets downloaded from Google Cloud Console
token_file = "token.json"              # overwritten after every successful authorization
scopes = ["https://www.googleapis.com/auth/calendar.readonly"]
request_timeout = "30s"                # per request to the token endpoint and Calendar API

[calendar]
id = "primary"                     # calendar to list events from
conference_solution = "Google Meet"
entry_point_type = "video"
max_pages = 0                      # 0 = follow page tokens until the last page

[cache]
enabled = true
dir = ""                           # default: ~/.cache/gcal-meet

[log]
level = "info"                     # debug, info, warn, error
format = "text"                    # text or json
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getDefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

func GetDefaultConfigDir() (string, error) {
	return getDefaultConfigDir()
}
