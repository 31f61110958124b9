package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

const authPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Authorize</title></head>
<body>
Authorize this app by visiting this URL: <a href="{{.}}" target="_blank" rel="noopener">{{.}}</a>
</body>
</html>
`

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.Error("failed to write health response", "error", err)
	}
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	authURL := s.gateway.AuthCodeURL()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.Execute(w, authURL); err != nil {
		logger.Error("failed to execute auth template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Debug("authorization URL issued")
}

// handleCallback exchanges the authorization code, then lists meetings with
// the new token. Nothing is fetched when the exchange fails.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		handleFailure(w, r, auth.ErrMissingCode)
		return
	}

	ctx := r.Context()

	token, err := s.gateway.Exchange(ctx, code)
	if err != nil {
		handleFailure(w, r, err)
		return
	}

	meetings, err := s.meetings.FetchMeetings(ctx, s.gateway.Client(ctx, token))
	if err != nil {
		handleFailure(w, r, err)
		return
	}

	if meetings == nil {
		meetings = []calendar.Meeting{}
	}
	s.updateCache(meetings)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(meetings); err != nil {
		logger.Error("failed to encode meetings response", "error", err)
	}

	logger.Info("meetings delivered", "count", len(meetings))
}

func (s *Server) updateCache(meetings []calendar.Meeting) {
	if s.cache == nil {
		return
	}

	s.cache.Update(s.calendarID, meetings)
	if err := s.cache.Save(); err != nil {
		logger.Warn("failed to save meetings cache", "error", err)
	}
}
