package timeline

import (
	"github.com/torchbearer/chronicle/internal/simerr"
)

// MaxAdvanceMinutes caps a single time advance at one week. Longer
// skips must be chained so every intermediate trigger window is seen.
const MaxAdvanceMinutes = 7 * 24 * 60

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsLeapYear reports whether the campaign year has a leap day,
// using the proleptic Gregorian rule.
func IsLeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// DaysInMonth returns the length of a month in the given year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// absoluteDay converts a date to days since year 1, month 1, day 1.
// Out-of-range days (the lenient 1-31 parse) are carried as-is and
// normalize through the minute arithmetic.
func absoluteDay(d Date) int {
	days := 0
	y := d.Year - 1
	days += y * 365
	days += y/4 - y/100 + y/400
	for m := 1; m < d.Month; m++ {
		days += DaysInMonth(d.Year, m)
	}
	return days + d.Day - 1
}

// dateFromAbsoluteDay is the inverse of absoluteDay.
func dateFromAbsoluteDay(abs int, yearWidth int) Date {
	year := 1
	for {
		length := 365
		if IsLeapYear(year) {
			length = 366
		}
		if abs < length {
			break
		}
		abs -= length
		year++
	}
	month := 1
	for abs >= DaysInMonth(year, month) {
		abs -= DaysInMonth(year, month)
		month++
	}
	return Date{Year: year, Month: month, Day: abs + 1, YearWidth: yearWidth}
}

// AddMinutes advances a (date, time) pair by the given number of
// minutes, rolling over days, months, and years. Negative deltas move
// backward. The result keeps the source date's year padding.
func AddMinutes(date, clock string, minutes int) (string, string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", "", err
	}
	c, err := ParseClock(clock)
	if err != nil {
		return "", "", err
	}

	total := absoluteDay(d)*24*60 + c.MinuteOfDay() + minutes
	if total < 0 {
		return "", "", simerr.New(simerr.CodeInvalidFormat, "result precedes the calendar epoch")
	}

	day := total / (24 * 60)
	rem := total % (24 * 60)
	nd := dateFromAbsoluteDay(day, d.YearWidth)
	nc := Clock{Hour: rem / 60, Minute: rem % 60}
	return nd.String(), nc.String(), nil
}

// Elapsed returns the signed minute distance from the start timestamp
// to the end timestamp. Negative when end precedes start. The value
// doubles as an ordering comparator between timestamps.
func Elapsed(startDate, startTime, endDate, endTime string) (int, error) {
	sd, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	sc, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	ed, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	ec, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	days := absoluteDay(ed) - absoluteDay(sd)
	return days*24*60 + ec.MinuteOfDay() - sc.MinuteOfDay(), nil
}

// DayOfWeek returns the weekday name for a campaign date. Year 1,
// month 1, day 1 is a Monday.
func DayOfWeek(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return weekdayNames[absoluteDay(d)%7], nil
}

// Season returns the season for a campaign date: months 3-5 spring,
// 6-8 summer, 9-11 autumn, 12-2 winter.
func Season(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	switch {
	case d.Month >= 3 && d.Month <= 5:
		return "spring", nil
	case d.Month >= 6 && d.Month <= 8:
		return "summer", nil
	case d.Month >= 9 && d.Month <= 11:
		return "autumn", nil
	default:
		return "winter", nil
	}
}
