package server

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Jahanvi0310/google-calendar-apis/internal/cache"
	"github.com/Jahanvi0310/google-calendar-apis/internal/calendar"
	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// Gateway is the authorization side of the server.
type Gateway interface {
	AuthCodeURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Client(ctx context.Context, token *oauth2.Token) *http.Client
}

// MeetingFetcher runs the meetings pipeline with an authorized client.
type MeetingFetcher interface {
	FetchMeetings(ctx context.Context, client *http.Client) ([]calendar.Meeting, error)
}

type Server struct {
	gateway    Gateway
	meetings   MeetingFetcher
	cache      *cache.Cache
	calendarID string
	config     config.ServerConfig
	templates  *template.Template
}

// New wires the handlers. meetingCache may be nil to disable caching.
func New(cfg *config.Config, gateway Gateway, meetings MeetingFetcher, meetingCache *cache.Cache) *Server {
	return &Server{
		gateway:    gateway,
		meetings:   meetings,
		cache:      meetingCache,
		calendarID: cfg.Calendar.ID,
		config:     cfg.Server,
		templates:  template.Must(template.New("auth").Parse(authPage)),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", withMiddleware(
		s.handleHealth,
		requestLogger(),
	))

	mux.HandleFunc("GET /auth", withMiddleware(
		s.handleAuth,
		securityHeaders(),
		requestLogger(),
	))

	// OAuth redirect target
	mux.HandleFunc("GET /{$}", withMiddleware(
		s.handleCallback,
		securityHeaders(),
		requestLogger(),
	))

	return mux
}

// ListenAndServe blocks serving HTTP until the listener fails.
func (s *Server) ListenAndServe() error {
	server := s.httpServer()

	logger.Info("server is running", "url", "http://"+server.Addr)
	return server.ListenAndServe()
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.Handler(),

		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,

		MaxHeaderBytes: 1 << 20, // 1 MB
	}
}
