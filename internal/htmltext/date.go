package htmltext

import "time"

// UnknownDate is returned when a post or comment date cannot be parsed.
const UnknownDate = "Unknown Date"

const (
	// naiveLayout matches the offset-less timestamps some WordPress
	// installs emit in the `date` field (site-local time, no zone).
	naiveLayout   = "2006-01-02T15:04:05"
	displayLayout = "Jan 2, 2006 3:04 PM"
)

// FormatDate renders an API date string for display. WordPress usually
// sends RFC 3339 (fractional seconds optional); a bare offset-less form is
// tried as a fallback. Never fails: unparseable input yields UnknownDate.
func FormatDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(displayLayout)
	}
	if t, err := time.Parse(naiveLayout, s); err == nil {
		return t.Format(displayLayout)
	}
	return UnknownDate
}
