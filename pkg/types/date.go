package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. The zero value means
// "no date" and is stored as NULL.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD and, for clients that send full timestamps,
// RFC3339 values truncated to their date.
func ParseDate(value string) (Date, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return Date{}, nil
	}
	if parsed, err := time.Parse(DateLayout, clean); err == nil {
		return Date{Time: parsed}, nil
	}
	parsed, err := time.Parse(time.RFC3339, clean)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid value %q", value)
	}
	return NewDate(parsed.Year(), parsed.Month(), parsed.Day()), nil
}

// String renders the date as YYYY-MM-DD, or an empty string for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Ptr returns nil for the zero value so optional columns stay NULL.
func (d Date) Ptr() *Date {
	if d.IsZero() {
		return nil
	}
	return &d
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler; null and "" decode to the zero value.
func (d *Date) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("date: unsupported scan type %T", value)
	}
}

func (d *Date) scanString(value string) error {
	clean := strings.TrimSpace(value)
	if len(clean) >= len(DateLayout) {
		clean = clean[:len(DateLayout)]
	}
	parsed, err := ParseDate(clean)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
