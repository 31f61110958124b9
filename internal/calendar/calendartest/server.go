// Package calendartest provides an in-process fake of the Google Calendar
// events.list and calendarList.list endpoints for tests.
package calendartest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	gcal "google.golang.org/api/calendar/v3"
)

// Page is one events.list response.
type Page struct {
	Items         []*gcal.Event
	NextPageToken string
}

// Request records what the fake received.
type Request struct {
	CalendarID string
	Query      url.Values
	Auth       string
}

// Server serves a fixed chain of pages. The first page answers requests
// without a pageToken, each following page answers the token announced by
// the page before it.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	pages     map[string]Page
	failures  map[string]int
	requests  []Request
	calendars []*gcal.CalendarListEntry
}

func NewServer(t testing.TB, pages ...Page) *Server {
	t.Helper()

	s := &Server{
		pages:    make(map[string]Page),
		failures: make(map[string]int),
	}

	token := ""
	for _, page := range pages {
		s.pages[token] = page
		token = page.NextPageToken
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Endpoint is the base path to hand to option.WithEndpoint.
func (s *Server) Endpoint() string {
	return s.URL + "/"
}

// FailOn makes requests carrying pageToken fail with status.
func (s *Server) FailOn(pageToken string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[pageToken] = status
}

// SetCalendars sets the entries returned by calendarList.list.
func (s *Server) SetCalendars(entries ...*gcal.CalendarListEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars = entries
}

// Requests returns the requests received so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	if r.Method == http.MethodGet && path == "users/me/calendarList" {
		s.handleCalendarList(w)
		return
	}

	parts := strings.Split(path, "/")
	if r.Method != http.MethodGet || len(parts) != 3 || parts[0] != "calendars" || parts[2] != "events" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	query := r.URL.Query()
	token := query.Get("pageToken")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		CalendarID: parts[1],
		Query:      query,
		Auth:       r.Header.Get("Authorization"),
	})
	status, failing := s.failures[token]
	page, found := s.pages[token]
	s.mu.Unlock()

	switch {
	case failing:
		writeError(w, status, "backend error")
		return
	case !found:
		writeError(w, http.StatusBadRequest, "invalid page token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&gcal.Events{
		Kind:          "calendar#events",
		Items:         page.Items,
		NextPageToken: page.NextPageToken,
	})
}

func (s *Server) handleCalendarList(w http.ResponseWriter) {
	s.mu.Lock()
	entries := append([]*gcal.CalendarListEntry(nil), s.calendars...)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&gcal.CalendarList{
		Kind:  "calendar#calendarList",
		Items: entries,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
		},
	})
}

// MeetEvent returns a Google Meet event; videoURI may be empty for an
// event without a video entry point.
func MeetEvent(summary, start, videoURI string) *gcal.Event {
	entryPoints := []*gcal.EntryPoint{
		{EntryPointType: "phone", Uri: "tel:+1-555-0100"},
	}
	if videoURI != "" {
		entryPoints = append(entryPoints, &gcal.EntryPoint{EntryPointType: "video", Uri: videoURI})
	}
	return conferenceEvent(summary, start, "Google Meet", entryPoints)
}

// ZoomEvent returns an event hosted on another conference solution.
func ZoomEvent(summary, start string) *gcal.Event {
	return conferenceEvent(summary, start, "Zoom Meeting", []*gcal.EntryPoint{
		{EntryPointType: "video", Uri: "https://zoom.example/j/1"},
	})
}

// PlainEvent returns an event without conference data.
func PlainEvent(summary, start string) *gcal.Event {
	return &gcal.Event{Summary: summary, Start: &gcal.EventDateTime{DateTime: start}}
}

func conferenceEvent(summary, start, solution string, entryPoints []*gcal.EntryPoint) *gcal.Event {
	return &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start},
		ConferenceData: &gcal.ConferenceData{
			ConferenceSolution: &gcal.ConferenceSolution{Name: solution},
			EntryPoints:        entryPoints,
		},
	}
}
