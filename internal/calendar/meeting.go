package calendar

import (
	gcal "google.golang.org/api/calendar/v3"
)

// Meeting is the reduced view of a conference-enabled calendar event.
// MeetLink is empty when the event has no matching entry point and is then
// omitted from JSON output.
type Meeting struct {
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	MeetLink string `json:"meetLink,omitempty"`
}

// HasLink reports whether a join link was found for the meeting.
func (m Meeting) HasLink() bool {
	return m.MeetLink != ""
}

// Matcher selects events by conference solution and picks the join link
// among their entry points.
type Matcher struct {
	ConferenceSolution string
	EntryPointType     string
}

// Match reports whether the event's conference solution name equals the
// target exactly. Events without conference data never match.
func (m Matcher) Match(item *gcal.Event) bool {
	name, ok := conferenceSolutionName(item)
	return ok && name == m.ConferenceSolution
}

// Project builds a Meeting from an event. The start is the date-time when
// present and the all-day date otherwise.
func (m Matcher) Project(item *gcal.Event) Meeting {
	meeting := Meeting{
		Summary: item.Summary,
		Start:   startOf(item),
	}
	if uri, ok := m.entryPointURI(item); ok {
		meeting.MeetLink = uri
	}
	return meeting
}

// Collect filters and projects items, preserving their order.
func (m Matcher) Collect(items []*gcal.Event) []Meeting {
	var meetings []Meeting
	for _, item := range items {
		if item == nil || !m.Match(item) {
			continue
		}
		meetings = append(meetings, m.Project(item))
	}
	return meetings
}

func conferenceSolutionName(item *gcal.Event) (string, bool) {
	switch {
	case item == nil:
		return "", false
	case item.ConferenceData == nil:
		return "", false
	case item.ConferenceData.ConferenceSolution == nil:
		return "", false
	default:
		return item.ConferenceData.ConferenceSolution.Name, true
	}
}

func startOf(item *gcal.Event) string {
	if item.Start == nil {
		return ""
	}
	if item.Start.DateTime != "" {
		return item.Start.DateTime
	}
	return item.Start.Date
}

// entryPointURI returns the URI of the first entry point of the wanted type.
func (m Matcher) entryPointURI(item *gcal.Event) (string, bool) {
	if item.ConferenceData == nil {
		return "", false
	}
	for _, ep := range item.ConferenceData.EntryPoints {
		if ep != nil && ep.EntryPointType == m.EntryPointType {
			return ep.Uri, true
		}
	}
	return "", false
}
