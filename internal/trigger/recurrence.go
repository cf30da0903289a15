package trigger

import (
	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// AdvanceRecurringEventDate returns a copy of the event with its
// trigger date moved to the next occurrence: +1 day for daily, +7
// days for weekly, +1 calendar month for monthly. Monthly advancement
// clamps to the target month's last day (Jan 31 -> Feb 28, or Feb 29
// in a leap year). The original date string's zero-padding width is
// preserved.
//
// This is an explicit operation, distinct from trigger detection: a
// firing recurring event stays pending, and the caller decides when
// to roll it forward.
func AdvanceRecurringEventDate(ev calendar.Event) (calendar.Event, error) {
	if !ev.HasDateTrigger() {
		return calendar.Event{}, simerr.New(simerr.CodeInvalidFormat,
			"event %q has no trigger date to advance", ev.ID)
	}
	d, err := timeline.ParseDate(ev.TriggerDate)
	if err != nil {
		return calendar.Event{}, err
	}

	out := ev.Clone()
	switch ev.Recurrence {
	case calendar.RecurrenceDaily, calendar.RecurrenceWeekly:
		days := 1
		if ev.Recurrence == calendar.RecurrenceWeekly {
			days = 7
		}
		nd, _, err := timeline.AddMinutes(ev.TriggerDate, "00:00", days*24*60)
		if err != nil {
			return calendar.Event{}, err
		}
		out.TriggerDate = nd

	case calendar.RecurrenceMonthly:
		year, month := d.Year, d.Month+1
		if month > 12 {
			month = 1
			year++
		}
		day := d.Day
		if max := timeline.DaysInMonth(year, month); day > max {
			day = max
		}
		next := timeline.Date{Year: year, Month: month, Day: day, YearWidth: d.YearWidth}
		out.TriggerDate = next.String()

	default:
		return calendar.Event{}, simerr.New(simerr.CodeUnsupportedRecurrence,
			"event %q: unsupported recurrence %q", ev.ID, ev.Recurrence)
	}
	return out, nil
}
