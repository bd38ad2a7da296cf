package slots

import "time"

// Label is one of the fixed daily session start times, e.g. "10:00".
type Label = string

// DateLayout is the calendar-date wire format used across the platform.
const DateLayout = "2006-01-02"

// catalog is the fixed ordered set of bookable session times. Order matters
// for display only.
var catalog = []Label{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00",
	"17:00", "18:00", "19:00", "20:00",
}

// Count is the number of slots in one day.
const Count = 12

// All returns the catalog in display order. Callers must not mutate the
// returned slice.
func All() []Label {
	return catalog
}

// IsValid reports whether t is a catalog slot label.
func IsValid(t string) bool {
	for _, label := range catalog {
		if label == t {
			return true
		}
	}
	return false
}

// ParseDate validates an ISO calendar date (YYYY-MM-DD). The round-trip check
// rejects inputs like "2025-6-1" that time.Parse would otherwise accept.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(DateLayout) != date {
		return time.Time{}, &time.ParseError{Layout: DateLayout, Value: date, Message: ": not canonical"}
	}
	return t, nil
}
