package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date stored as UTC midnight.
type Date struct {
	t time.Time
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day from t, keeping its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts a plain date or a timestamp; the time of day is dropped.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("parsing date %q: expected YYYY-MM-DD", s)
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange bounds a date filter. A zero Start or End leaves that side open.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether d lies within the range, both bounds inclusive.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// ParseDateRange parses optional start/end strings; empty strings leave the side open.
func ParseDateRange(start, end string) (DateRange, error) {
	var rng DateRange
	var err error
	if strings.TrimSpace(start) != "" {
		if rng.Start, err = ParseDate(start); err != nil {
			return DateRange{}, fmt.Errorf("start: %w", err)
		}
	}
	if strings.TrimSpace(end) != "" {
		if rng.End, err = ParseDate(end); err != nil {
			return DateRange{}, fmt.Errorf("end: %w", err)
		}
	}
	return rng, nil
}
