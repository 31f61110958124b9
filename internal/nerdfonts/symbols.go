// Package nerdfonts holds the Nerd Font glyphs used in CLI output.
package nerdfonts

// Calendar related symbols
const (
	Calendar = "\uF073"
	Clock    = "\uF017"
	Video    = "\uF03D"
)

// Status symbols
const (
	InfoCircle          = "\uF05A"
	CheckCircle         = "\uF058"
	ExclamationCircle   = "\uF06A"
	ExclamationTriangle = "\uF071"
)

// MeetingIcon picks the glyph for a meeting row; meetings without a join
// link fall back to the plain calendar glyph.
func MeetingIcon(hasLink bool) string {
	if hasLink {
		return Video
	}
	return Calendar
}
