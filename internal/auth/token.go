package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// TokenStore persists the token pair produced by an authorization exchange.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
}

// FileTokenStore keeps the token as a single flat JSON object on disk.
// Every Save overwrites the file wholesale.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the stored token. It returns ErrNoToken when the file does not exist.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, NewTokenError("load", "failed to read token file").WithCause(err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, NewTokenError("load", "invalid token data").WithCause(err)
	}

	return &token, nil
}

func (s *FileTokenStore) Save(token *oauth2.Token) error {
	if token == nil {
		return NewTokenError("save", "nil token")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return NewTokenError("save", "failed to marshal token").WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return NewTokenError("save", "failed to create token directory").WithCause(err)
		}
	}

	// Save with restrictive permissions
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return NewTokenError("save", "failed to write token file").WithCause(err)
	}

	logger.Info("token stored", "token_path", s.path, "has_refresh_token", token.RefreshToken != "")
	return nil
}

// Clear removes the stored token. A missing file is not an error.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewTokenError("clear", "failed to remove token file").WithCause(err)
	}

	logger.Info("token cleared", "token_path", s.path)
	return nil
}

// HasValidToken checks if a stored token exists and has not expired.
func (s *FileTokenStore) HasValidToken() bool {
	token, err := s.Load()
	isValid := err == nil && token.Valid()

	logger.Debug("token validation", "has_token", err == nil, "is_valid", isValid)
	return isValid
}

// Describe summarizes the stored token for status output.
func (s *FileTokenStore) Describe() (string, error) {
	token, err := s.Load()
	if err != nil {
		return "", err
	}

	switch {
	case token.Valid() && token.Expiry.IsZero():
		return "valid", nil
	case token.Valid():
		return fmt.Sprintf("valid until %s", token.Expiry.Local().Format("2006-01-02 15:04:05")), nil
	case token.RefreshToken != "":
		return "expired, refresh token available", nil
	default:
		return "expired", nil
	}
}
