package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/Jahanvi0310/google-calendar-apis/internal/config"
	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

type fetchState int

const (
	stateFetching fetchState = iota
	stateDone
)

// MeetingService pages through the events of one calendar and reduces them
// to meetings. It holds no per-request state and is safe for concurrent use.
type MeetingService struct {
	calendarID    string
	matcher       Matcher
	maxPages      int
	clientOptions []option.ClientOption
	now           func() time.Time
}

// NewMeetingService creates the pipeline for the configured calendar.
// clientOptions are appended when the Calendar API client is built.
func NewMeetingService(cfg config.CalendarConfig, clientOptions ...option.ClientOption) *MeetingService {
	return &MeetingService{
		calendarID: cfg.ID,
		matcher: Matcher{
			ConferenceSolution: cfg.ConferenceSolution,
			EntryPointType:     cfg.EntryPointType,
		},
		maxPages:      cfg.MaxPages,
		clientOptions: clientOptions,
		now:           time.Now,
	}
}

// FetchMeetings builds a Calendar API client on top of an authorized HTTP
// client and returns every matching meeting from now on.
func (s *MeetingService) FetchMeetings(ctx context.Context, client *http.Client) ([]Meeting, error) {
	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, s.clientOptions...)

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return s.ListMeetings(ctx, srv.Events)
}

// ListMeetings requests single event instances ordered by start time,
// following page tokens until the API stops returning one. Pages are fetched
// one after the other and any failure discards everything collected so far.
func (s *MeetingService) ListMeetings(ctx context.Context, events *gcal.EventsService) ([]Meeting, error) {
	startTime := time.Now()
	timeMin := s.now().UTC().Format(time.RFC3339)

	meetings := make([]Meeting, 0)
	var (
		pageToken string
		page      int
		scanned   int
	)

	for state := stateFetching; state != stateDone; {
		if s.maxPages > 0 && page >= s.maxPages {
			return nil, fmt.Errorf("calendar %q: %w (max_pages=%d)", s.calendarID, ErrPageLimit, s.maxPages)
		}
		page++

		call := events.List(s.calendarID).
			TimeMin(timeMin).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			logger.Warn("failed to fetch events page", "calendar_id", s.calendarID, "page", page, "error", err)
			return nil, &PageError{CalendarID: s.calendarID, Page: page, Err: err}
		}

		batch := s.matcher.Collect(resp.Items)
		meetings = append(meetings, batch...)
		scanned += len(resp.Items)

		logger.Debug("fetched events page",
			"calendar_id", s.calendarID,
			"page", page,
			"event_count", len(resp.Items),
			"meeting_count", len(batch),
			"has_next_page", resp.NextPageToken != "",
		)

		pageToken = resp.NextPageToken
		if pageToken == "" {
			state = stateDone
		}
	}

	logger.Info("meetings fetched",
		"calendar_id", s.calendarID,
		"pages", page,
		"events", scanned,
		"meetings", len(meetings),
		"duration", time.Since(startTime).String(),
	)

	return meetings, nil
}
