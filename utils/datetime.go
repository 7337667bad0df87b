package utils

import (
	"strings"
	"time"
)

// DateTimeLayout is the wire format for every timestamp in the API.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime marshals as "2006-01-02 15:04:05".
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// DateTimePtr returns nil for a nil time.
func DateTimePtr(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	dt := DateTime{Time: *t}
	return &dt
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDateTime parses s in DateTimeLayout as UTC.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.UTC)
}
