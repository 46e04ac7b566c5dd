package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var errInvalidDueDate = errors.New(`"dueDate" must be a valid date`)

// DueDate accepts a date-only string ("2006-01-02"), an RFC3339 timestamp
// or a number of milliseconds since the Unix epoch.
type DueDate struct {
	time.Time
}

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDueDate parses s with the layouts accepted for due dates. Date-only
// values are stored as the start of that day in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checkDueDate(t.UTC())
		}
	}
	return time.Time{}, errInvalidDueDate
}

// checkDueDate keeps t inside the years encoding/json can render.
func checkDueDate(t time.Time) (time.Time, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, errInvalidDueDate
	}
	return t, nil
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errInvalidDueDate
		}
		t, err := ParseDueDate(s)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return errInvalidDueDate
	}
	t, err := checkDueDate(time.UnixMilli(ms).UTC())
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}
