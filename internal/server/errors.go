package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// Public error bodies. Upstream failures are deliberately undifferentiated.
const (
	msgMissingCode  = "Error: Authorization code not found."
	msgTokenFailure = "Error retrieving access token"
)

func handleError(w http.ResponseWriter, r *http.Request, status int, publicMsg, logMsg string, args ...any) {
	logArgs := []any{
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", w.Header().Get(requestIDHeader),
	}
	logArgs = append(logArgs, args...)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, logMsg, logArgs...)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(publicMsg)); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}

// handleFailure maps a callback failure to its HTTP response.
func handleFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		exchangeErr *auth.ExchangeError
		tokenErr    *auth.TokenError
		pageErr     *calendar.PageError
	)

	switch {
	case errors.Is(err, auth.ErrMissingCode):
		// Answered with 200 and the error text, as browsers land here directly
		handleError(w, r, http.StatusOK, msgMissingCode, "callback without authorization code")
	case errors.As(err, &exchangeErr):
		handleError(w, r, http.StatusInternalServerError, msgTokenFailure,
			"error retrieving access token", "error", exchangeErr.Err)
	case errors.As(err, &tokenErr):
		handleError(w, r, http.StatusInternalServerError, msgTokenFailure,
			"error storing access token", "operation", tokenErr.Operation, "error", err)
	case errors.As(err, &pageErr):
		handleError(w, r, http.StatusInternalServerError, msgTokenFailure,
			"error listing calendar events", "calendar_id", pageErr.CalendarID, "page", pageErr.Page, "error", pageErr.Err)
	default:
		handleError(w, r, http.StatusInternalServerError, msgTokenFailure,
			"error fetching meetings", "error", err)
	}
}
