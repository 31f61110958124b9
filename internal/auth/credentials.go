package auth

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadCredentials reads a Google client secrets file (the "installed" or
// "web" JSON downloaded from the Cloud Console) and returns an OAuth2 config
// that redirects to the first registered redirect URI.
func LoadCredentials(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials file: %w", err)
	}

	return ParseCredentials(data, scopes...)
}

// ParseCredentials builds an OAuth2 config from client secrets JSON.
func ParseCredentials(data []byte, scopes ...string) (*oauth2.Config, error) {
	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("error parsing credentials: %w", err)
	}

	if config.ClientID == "" {
		return nil, fmt.Errorf("error parsing credentials: missing client_id")
	}
	if config.Endpoint.AuthURL == "" || config.Endpoint.TokenURL == "" {
		config.Endpoint = google.Endpoint
	}

	return config, nil
}
