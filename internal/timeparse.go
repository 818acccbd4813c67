package internal

import "time"

const (
	timestampLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

// ParseTimestamp accepts ISO timestamps with or without a time component
// ("2024-01-01T09:00:00" or "2024-01-01"). Values are naive office-local
// time; no zone designator is expected.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

// ParseEndTimestamp parses the end bound of an inclusive range. A bare date
// ("2024-01-01") extends to the end of that calendar day so the whole day
// falls inside the range; full timestamps pass through unchanged.
func ParseEndTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	_, end := DayBounds(t)
	return end, nil
}

// ParseDate accepts a bare ISO date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatTimestamp renders a timestamp the way exports expect it.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// FormatDate renders a bare ISO date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DayBounds returns the inclusive [00:00:00, 23:59:59.999999999] window of
// the calendar day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
