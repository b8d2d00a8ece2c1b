package licspend

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// ShortUS formats the date as M/D/YYYY, the dashboard's display convention.
func (d Date) ShortUS() string {
	if d.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d/%d/%d", int(d.m), d.d, d.y)
}

// IsZero returns true if the date is the zero value, used for "no renewal date".
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// DaysUntil returns the number of whole days from d to x. Negative if x is before d.
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()) / (24 * time.Hour))
}

// EndOfQuarter returns the last day of the calendar quarter containing d.
func (d Date) EndOfQuarter() Date {
	quarter := (d.m - 1) / 3              // in [0..3]
	endMonth := time.Month(quarter*3 + 3) // in [1..12] hence the +3
	return NewDate(d.y, endMonth+1, 0)    // last is next month on the day 0
}

// EndOfYear returns December 31 of d's year.
func (d Date) EndOfYear() Date { return NewDate(d.y, time.December, 31) }

// ParseDate parses a Date from a string. It accepts ISO-8601 ("2026-01-31",
// "2026-1-31") and the US short form ("1/31/2026"). The empty string is the
// zero date, meaning no date is set.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Date{}, nil
	}
	if on, err := time.Parse(readDateFormat, str); err == nil {
		return NewDate(on.Date()), nil
	}
	if on, err := time.Parse("1/2/2006", str); err == nil {
		return NewDate(on.Date()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, DateFormat)
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a
// json string. An empty string or null decodes to the zero date.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	if string(bytes) == "null" {
		*j = Date{}
		return nil
	}
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("invalid date in data file: %w", err)
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
