package clock

import "time"

// DefaultOffsetHours is the office timezone offset from UTC (Moscow, UTC+3).
const DefaultOffsetHours = 3

// Clock supplies the current office-local time.
type Clock interface {
	Now() time.Time
}

// OfficeClock returns wall-clock time shifted by a fixed offset from UTC.
// This is deliberately naive arithmetic, not a timezone implementation:
// no DST, no locale data. Stored timestamps are office-local.
type OfficeClock struct {
	offset time.Duration
}

// NewOfficeClock creates a clock with the given offset in hours from UTC.
func NewOfficeClock(offsetHours int) *OfficeClock {
	return &OfficeClock{offset: time.Duration(offsetHours) * time.Hour}
}

// Default returns a clock at the standard office offset (UTC+3).
func Default() *OfficeClock {
	return NewOfficeClock(DefaultOffsetHours)
}

// Now returns the current instant shifted to office-local time.
func (c *OfficeClock) Now() time.Time {
	return time.Now().UTC().Add(c.offset)
}

// ToLocal shifts a UTC timestamp to office-local time. Nil passes through.
func (c *OfficeClock) ToLocal(utc *time.Time) *time.Time {
	if utc == nil {
		return nil
	}
	t := utc.Add(c.offset)
	return &t
}

// ToUTC shifts an office-local timestamp back to UTC. Nil passes through.
func (c *OfficeClock) ToUTC(local *time.Time) *time.Time {
	if local == nil {
		return nil
	}
	t := local.Add(-c.offset)
	return &t
}
