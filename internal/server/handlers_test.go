package server

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"github.com/Jahanvi0310/google-calendar-apis/internal/auth"
	"github.com/Jahanvi0310/google-calendar-apis/internal/cache"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
)

const testAuthURL = "https://accounts.example.com/o/oauth2/auth?access_type=offline&client_id=id&response_type=code"

type fakeGateway struct {
	exchangeErr   error
	exchangeCalls int
	lastCode      string
}

func (g *fakeGateway) AuthCodeURL() string { return testAuthURL }

func (g *fakeGateway) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	g.exchangeCalls++
	g.lastCode = code
	if g.exchangeErr != nil {
		return nil, g.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (g *fakeGateway) Client(_ context.Context, _ *oauth2.Token) *http.Client {
	return http.DefaultClient
}

type fakeFetcher struct {
	meetings []calendar.Meeting
	err      error
	calls    int
}

func (f *fakeFetcher) FetchMeetings(_ context.Context, _ *http.Client) ([]calendar.Meeting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meetings, nil
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCallbackMissingCode(t *testing.T) {
	for _, target := range []string{"/", "/?code=", "/?code=%20%20", "/?state=state-token"} {
		t.Run(target, func(t *testing.T) {
			gateway := &fakeGateway{}
			fetcher := &fakeFetcher{}
			s := New(config.Default(), gateway, fetcher, nil)

			rec := serve(t, s.Handler(), target)

			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
			if rec.Body.String() != "Error: Authorization code not found." {
				t.Errorf("unexpected body: %q", rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("unexpected content type: %q", ct)
			}
			if gateway.exchangeCalls != 0 || fetcher.calls != 0 {
				t.Errorf("expected no upstream calls, got exchange=%d fetch=%d", gateway.exchangeCalls, fetcher.calls)
			}
		})
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	gateway := &fakeGateway{exchangeErr: &auth.ExchangeError{Err: errors.New("connection refused")}}
	fetcher := &fakeFetcher{}
	s := New(config.Default(), gateway, fetcher, nil)

	rec := serve(t, s.Handler(), "/?code=bad")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != "Error retrieving access token" {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("upstream error detail leaked to the client")
	}
	if fetcher.calls != 0 {
		t.Errorf("meetings fetched after a failed exchange: %d calls", fetcher.calls)
	}
}

func TestCallbackPaginationFailure(t *testing.T) {
	gateway := &fakeGateway{}
	fetcher := &fakeFetcher{err: &calendar.PageError{CalendarID: "primary", Page: 3, Err: errors.New("backend error")}}
	s := New(config.Default(), gateway, fetcher, nil)

	rec := serve(t, s.Handler(), "/?code=good")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != "Error retrieving access token" {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestCallbackTokenSaveFailure(t *testing.T) {
	gateway := &fakeGateway{exchangeErr: auth.NewTokenError("save", "disk full")}
	fetcher := &fakeFetcher{}
	s := New(config.Default(), gateway, fetcher, nil)

	rec := serve(t, s.Handler(), "/?code=good")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if fetcher.calls != 0 {
		t.Error("meetings fetched although the token could not be stored")
	}
}

func TestCallbackSuccess(t *testing.T) {
	meetingCache := cache.New(t.TempDir())
	gateway := &fakeGateway{}
	fetcher := &fakeFetcher{meetings: []calendar.Meeting{
		{Summary: "Standup", Start: "2030-01-01T10:00:00Z", MeetLink: "https://meet.example/abc"},
		{Summary: "Retro", Start: "2030-01-02"},
	}}
	s := New(config.Default(), gateway, fetcher, meetingCache)

	rec := serve(t, s.Handler(), "/?code=4/abc&scope=calendar")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %q", ct)
	}
	if gateway.lastCode != "4/abc" {
		t.Errorf("exchange received code %q", gateway.lastCode)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(got))
	}
	if got[0]["meetLink"] != "https://meet.example/abc" {
		t.Errorf("unexpected first meeting: %v", got[0])
	}
	if _, ok := got[1]["meetLink"]; ok {
		t.Errorf("absent meetLink should be omitted: %v", got[1])
	}

	reloaded := cache.New(meetingCache.GetCacheDir())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("failed to load cache: %v", err)
	}
	if reloaded.MeetingCount() != 2 || reloaded.CalendarID != "primary" {
		t.Errorf("cache not updated: %d meetings, calendar %q", reloaded.MeetingCount(), reloaded.CalendarID)
	}
}

func TestCallbackEmptyResultIsArray(t *testing.T) {
	s := New(config.Default(), &fakeGateway{}, &fakeFetcher{}, nil)

	rec := serve(t, s.Handler(), "/?code=good")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestAuthPage(t *testing.T) {
	s := New(config.Default(), &fakeGateway{}, &fakeFetcher{}, nil)

	rec := serve(t, s.Handler(), "/auth")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type: %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Authorize this app by visiting this URL:") {
		t.Errorf("missing instructions in body: %q", body)
	}
	if !strings.Contains(html.UnescapeString(body), `href="`+testAuthURL+`"`) {
		t.Errorf("missing authorization link in body: %q", body)
	}
}

func TestHealthAndRouting(t *testing.T) {
	s := New(config.Default(), &fakeGateway{}, &fakeFetcher{}, nil)
	h := s.Handler()

	rec := serve(t, h, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health: got %d %q", rec.Code, rec.Body.String())
	}

	if rec := serve(t, h, "/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /auth, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := New(config.Default(), &fakeGateway{}, &fakeFetcher{}, nil)
	h := s.Handler()

	rec := serve(t, h, "/health")
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing generated request ID")
	}

	const id = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, id)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != id {
		t.Errorf("request ID not propagated: %q", got)
	}
}
