package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
)

// Cache keeps the result of the last successful meetings fetch on disk.
type Cache struct {
	Meetings   []calendar.Meeting `json:"meetings"`
	CalendarID string             `json:"calendar_id"`
	LastSync   time.Time          `json:"last_sync"`

	mu       sync.RWMutex
	cacheDir string
	filePath string
}

func New(cacheDir string) *Cache {
	if cacheDir == "" {
		if defaultDir, err := GetDefaultCacheDir(); err == nil {
			cacheDir = defaultDir
		} else {
			cacheDir = filepath.Join(os.TempDir(), config.AppName)
		}
	}

	return &Cache{
		Meetings: []calendar.Meeting{},
		cacheDir: cacheDir,
		filePath: filepath.Join(cacheDir, "meetings.json"),
	}
}

func (c *Cache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		// A missing cache file means nothing was synced yet
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	return nil
}

func (c *Cache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Update replaces the cached meetings with a fresh result.
func (c *Cache) Update(calendarID string, meetings []calendar.Meeting) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Meetings = append([]calendar.Meeting{}, meetings...)
	c.CalendarID = calendarID
	c.LastSync = time.Now()
}

// Snapshot returns a copy of the cached meetings and the time they were synced.
func (c *Cache) Snapshot() ([]calendar.Meeting, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]calendar.Meeting{}, c.Meetings...), c.LastSync
}

func (c *Cache) HasMeetings() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.Meetings) > 0
}

func (c *Cache) MeetingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.Meetings)
}

// LinkCount returns how many cached meetings carry a join link.
func (c *Cache) LinkCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, m := range c.Meetings {
		if m.HasLink() {
			count++
		}
	}
	return count
}

func (c *Cache) GetFilePath() string {
	return c.filePath
}

func (c *Cache) GetCacheDir() string {
	return c.cacheDir
}

func GetDefaultCacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cache", config.AppName), nil
}
