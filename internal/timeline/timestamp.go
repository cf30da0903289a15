// Package timeline implements pure date/time arithmetic over the
// campaign calendar: a proleptic Gregorian-style calendar with 1-4
// digit years, a 7-day week, and four seasons. Dates and times are
// plain strings at the API boundary ("0735-10-12", "14:00") so the
// package has no dependency on the rest of the engine.
//
// All functions are pure. Errors are reported through simerr codes,
// never panics.
package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/torchbearer/chronicle/internal/simerr"
)

// Date is a parsed campaign date. YearWidth records the zero-padding
// of the source string so formatting round-trips exactly.
type Date struct {
	Year      int
	Month     int
	Day       int
	YearWidth int
}

// Clock is a parsed 24-hour time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseDate parses a campaign date string. Both "-" and "/" are
// accepted as separators; formatting always emits "-". The day is
// validated leniently (1-31) so authored dates like "0735-02-30"
// parse; arithmetic normalizes them against real month lengths.
func ParseDate(s string) (Date, error) {
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Date{}, simerr.New(simerr.CodeInvalidFormat, "invalid date %q: want YYYY-MM-DD", s)
	}
	year, err := parseField(parts[0], 1, 4)
	if err != nil {
		return Date{}, simerr.New(simerr.CodeInvalidFormat, "invalid year in date %q", s)
	}
	month, err := parseField(parts[1], 1, 2)
	if err != nil || month < 1 || month > 12 {
		return Date{}, simerr.New(simerr.CodeInvalidFormat, "invalid month in date %q", s)
	}
	day, err := parseField(parts[2], 1, 2)
	if err != nil || day < 1 || day > 31 {
		return Date{}, simerr.New(simerr.CodeInvalidFormat, "invalid day in date %q", s)
	}
	width := len(parts[0])
	return Date{Year: year, Month: month, Day: day, YearWidth: width}, nil
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, simerr.New(simerr.CodeInvalidFormat, "invalid time %q: want HH:MM", s)
	}
	hour, err := parseField(parts[0], 1, 2)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, simerr.New(simerr.CodeInvalidFormat, "invalid hour in time %q", s)
	}
	minute, err := parseField(parts[1], 1, 2)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, simerr.New(simerr.CodeInvalidFormat, "invalid minute in time %q", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// String formats the date with its original year padding and 2-digit
// month and day.
func (d Date) String() string {
	width := d.YearWidth
	if w := len(strconv.Itoa(d.Year)); width < w {
		width = w
	}
	return fmt.Sprintf("%0*d-%02d-%02d", width, d.Year, d.Month, d.Day)
}

// String formats the time as zero-padded HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MinuteOfDay returns minutes since midnight.
func (c Clock) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// parseField parses a decimal field of bounded width. Signs, spaces,
// and hex prefixes are rejected.
func parseField(s string, minWidth, maxWidth int) (int, error) {
	if len(s) < minWidth || len(s) > maxWidth {
		return 0, fmt.Errorf("field %q out of width range", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("field %q not numeric", s)
		}
	}
	return strconv.Atoi(s)
}
