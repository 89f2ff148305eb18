// v1
// internal/daytype/date.go
package daytype

import (
	"fmt"
	"time"
)

// Date is a plain calendar date without time-of-day or location. It is
// comparable and therefore usable as a map key, which the classifier and
// matcher rely on. All calendar arithmetic goes through the proleptic
// Gregorian calendar in UTC.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components. Out-of-range components are
// normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// DaysUntil returns the number of calendar days from d to other; negative
// when other precedes d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

// Weekday returns the weekday index with Monday = 0 and Sunday = 6.
func (d Date) Weekday() int {
	wd := int(d.Time().Weekday())
	return (wd + 6) % 7
}

// IsWeekend reports whether the date is a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	return d.Weekday() >= 5
}

// ISOWeek returns the ISO 8601 week number of the date. The owning ISO year
// is intentionally dropped: weekend alignment across years compares week
// numbers only.
func (d Date) ISOWeek() int {
	_, week := d.Time().ISOWeek()
	return week
}

// DayOfYear returns the ordinal day within the date's year, 1-based.
func (d Date) DayOfYear() int {
	return d.Time().YearDay()
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// MarshalText encodes the date as YYYY-MM-DD so Date round-trips through
// JSON payloads (used by the persistent holiday cache).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD date.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsLeapYear reports whether the year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366 for the given year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// FirstOfYear returns January 1 of the year.
func FirstOfYear(year int) Date {
	return Date{Year: year, Month: time.January, Day: 1}
}

// LastOfYear returns December 31 of the year.
func LastOfYear(year int) Date {
	return Date{Year: year, Month: time.December, Day: 31}
}

// DateForDayOfYear returns the date holding the given 1-based ordinal day.
// Values beyond the year's length are clamped to December 31; values below
// one are clamped to January 1.
func DateForDayOfYear(year, dayOfYear int) Date {
	if dayOfYear < 1 {
		dayOfYear = 1
	}
	if max := DaysInYear(year); dayOfYear > max {
		dayOfYear = max
	}
	return FirstOfYear(year).AddDays(dayOfYear - 1)
}
