package wsse

import (
	"fmt"
	"time"
)

// FreshnessWindow bounds how far a Created timestamp may drift from
// the server clock, in either direction. Exactly the window is still
// fresh. Five minutes, fixed; it is deliberately not configurable.
const FreshnessWindow = 300 * time.Second

// CreatedFormat is the timestamp layout emitted by clients.
const CreatedFormat = "2006-01-02T15:04:05.000Z"

// Created formats a wall-clock instant as a wire timestamp in UTC.
func Created(now time.Time) string {
	return now.UTC().Format(CreatedFormat)
}

// ParseCreated parses a Created timestamp. A trailing "Z" is the UTC
// designator and is handled by the RFC 3339 layout; zone-less
// timestamps are interpreted as UTC.
func ParseCreated(created string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", created); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparsable created timestamp %q", created)
}

// IsFresh reports whether created lies within the freshness window of
// now. It fails closed: an unparsable timestamp is never fresh.
func IsFresh(created string, now time.Time) bool {
	t, err := ParseCreated(created)
	if err != nil {
		return false
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	return diff <= FreshnessWindow
}
