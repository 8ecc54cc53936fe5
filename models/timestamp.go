package models

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format of every timestamp (dd-MM-yyyy HH:mm:ss)
const TimestampLayout = "02-01-2006 15:04:05"

// Timestamp is a UTC instant with second precision that serializes using
// TimestampLayout.
type Timestamp time.Time

// NewTimestamp truncates t to whole seconds in UTC
func NewTimestamp(t time.Time) *Timestamp {
	ts := Timestamp(t.UTC().Truncate(time.Second))
	return &ts
}

// Time returns the underlying time value
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp %q must match dd-MM-yyyy HH:mm:ss: %w", s, err)
	}
	*t = Timestamp(parsed)
	return nil
}
