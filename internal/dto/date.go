package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FlexDate parses a date field from JSON as either date-only
// ("2006-01-02") or RFC3339. Date-only is stored as start of that day
// in UTC.
type FlexDate struct{ t *time.Time }

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		d.t = nil
		return nil
	}
	t, err := ParseFlexDate(*raw)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// ParseFlexDate parses a date-only or RFC3339 string. Empty input is
// nil, not an error. Used for JSON bodies and multipart form fields.
func ParseFlexDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d FlexDate) Ptr() *time.Time { return d.t }
