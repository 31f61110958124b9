package calendar

import (
	"context"
	"fmt"
	"net/http"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// CalendarInfo describes one calendar from the user's calendar list.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	AccessRole  string `json:"accessRole"`
	Primary     bool   `json:"primary"`
}

// ListCalendars returns every calendar the authorized user can see, so the
// right value for calendar.id can be picked.
func ListCalendars(ctx context.Context, client *http.Client, clientOptions ...option.ClientOption) ([]CalendarInfo, error) {
	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, clientOptions...)

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	calendars := make([]CalendarInfo, 0)
	page := 0
	err = srv.CalendarList.List().Context(ctx).Pages(ctx, func(list *gcal.CalendarList) error {
		page++
		for _, item := range list.Items {
			if item == nil {
				continue
			}
			calendars = append(calendars, CalendarInfo{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				AccessRole:  item.AccessRole,
				Primary:     item.Primary,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	logger.Debug("calendar list fetched", "pages", page, "calendars", len(calendars))
	return calendars, nil
}
