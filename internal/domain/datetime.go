package domain

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the yyyy-MM-dd form used in list query strings.
const DateLayout = "2006-01-02"

const wireLayout = "2006-01-02T15:04:05"

// encodeLayout keeps up to the 7 fractional digits a .NET DateTime carries.
const encodeLayout = "2006-01-02T15:04:05.9999999Z07:00"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	wireLayout,
	"2006-01-02T15:04",
	DateLayout,
}

// DateTime is a timestamp as exchanged with the upstream .NET APIs, which emit
// local date-times without a zone offset.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime accepts RFC3339 as well as the zone-less upstream forms.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("unrecognized date-time %q", s)
}

// MarshalJSON writes the instant in UTC. Zone-less upstream values decode as
// UTC, so they round-trip unchanged apart from the trailing Z.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(encodeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date-time must be a JSON string, got %s", data)
	}
	parsed, err := ParseDateTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
