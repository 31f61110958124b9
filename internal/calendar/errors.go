package calendar

import (
	"errors"
	"fmt"
)

// ErrPageLimit is returned when the configured page cap is reached while the
// API still reports more pages.
var ErrPageLimit = errors.New("page limit reached before the last page")

// PageError reports a failed events.list call. Pagination stops at the
// first failure and no partial result is returned.
type PageError struct {
	CalendarID string
	Page       int
	Err        error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("listing events of calendar %q failed on page %d: %v", e.CalendarID, e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
