package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format records are stored with.
const DateLayout = "2006-01-02"

// PeriodLayout is the month key format used for aggregation.
const PeriodLayout = "2006-01"

// Date is a calendar day rendered as YYYY-MM-DD. Keeping it textual lets
// period filtering stay a plain prefix match.
type Date string

// NewDate renders t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s as a calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Valid reports whether d is a well-formed calendar date.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// Day returns the digits after the second '-', up to the first non-digit,
// so "2024-05-03T10:00:00" and "2024-05-4" both have a day. It returns 0 when
// there are no such digits.
func (d Date) Day() int {
	_, rest, ok := strings.Cut(string(d), "-")
	if !ok {
		return 0
	}
	if _, rest, ok = strings.Cut(rest, "-"); !ok {
		return 0
	}

	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		rest = rest[:end]
	}
	day, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return day
}

func (d Date) String() string {
	return string(d)
}

// Period is a calendar month, the unit of aggregation.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a YYYY-MM key.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodLayout, strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return PeriodOf(t), nil
}

// String renders the YYYY-MM key.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Contains reports whether d falls in the period by key prefix.
func (p Period) Contains(d Date) bool {
	return strings.HasPrefix(string(d), p.String()+"-")
}

// Start returns midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the period.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Next returns the following month.
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// Prev returns the preceding month.
func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From Date
	To   Date
}

// AllTime spans every representable date.
var AllTime = DateRange{From: "0000-01-01", To: "9999-12-31"}

// NewDateRange validates both ends and their order.
func NewDateRange(from, to string) (DateRange, error) {
	start, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	if end < start {
		return DateRange{}, fmt.Errorf("invalid range: %s is before %s", end, start)
	}
	return DateRange{From: start, To: end}, nil
}

// Contains reports whether d lies within the range. ISO dates order lexically.
func (r DateRange) Contains(d Date) bool {
	return d >= r.From && d <= r.To
}
