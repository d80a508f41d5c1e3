package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, kept as YYYY-MM-DD.
// It is never shifted through a time zone, so day and month always
// match what the registrant typed.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", err
	}
	return Date(t.Format(DateLayout)), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Month returns 1..12, or 0 when the date is empty or unparsable.
func (d Date) Month() int {
	t, ok := d.Time()
	if !ok {
		return 0
	}
	return int(t.Month())
}

func (d Date) Day() int {
	t, ok := d.Time()
	if !ok {
		return 0
	}
	return t.Day()
}

// BR formats the date as dd/mm/yyyy, or "-" when unknown.
func (d Date) BR() string {
	t, ok := d.Time()
	if !ok {
		return "-"
	}
	return t.Format("02/01/2006")
}

// DayMonth formats the date as dd/mm.
func (d Date) DayMonth() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return t.Format("02/01")
}

// AgeOn returns the completed years between the date and now.
func (d Date) AgeOn(now time.Time) int {
	t, ok := d.Time()
	if !ok {
		return 0
	}
	age := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		age--
	}
	return age
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = DateOf(v)
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d *Date) scanText(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = ""
		return nil
	}
	// kept verbatim; the intake service decides whether it parses
	*d = Date(*s)
	return nil
}
