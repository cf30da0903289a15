package calendar

import (
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// historyTail bounds the in-snapshot history list. Older entries live
// only in the sqlite history store.
const historyTail = 20

// AdvanceTime projects the snapshot forward by the given number of
// minutes and returns the new snapshot. The input snapshot is not
// modified. Advances must be positive and at most one week; longer
// skips are chained by the caller so no trigger window is skipped.
//
// Day-of-week and season are recomputed only when the date actually
// changed. Cumulative elapsed hours grow by minutes/60.
func AdvanceTime(snap Snapshot, minutes int, reason string) (Snapshot, error) {
	if minutes <= 0 {
		return Snapshot{}, simerr.New(simerr.CodeInvalidDuration,
			"advance of %d minutes: must be positive", minutes)
	}
	if minutes > timeline.MaxAdvanceMinutes {
		return Snapshot{}, simerr.New(simerr.CodeInvalidDuration,
			"advance of %d minutes exceeds the one-week cap (%d); chain shorter advances",
			minutes, timeline.MaxAdvanceMinutes)
	}

	newDate, newTime, err := timeline.AddMinutes(snap.Current.Date, snap.Current.Time, minutes)
	if err != nil {
		return Snapshot{}, err
	}

	out := snap.Clone()
	dateChanged := newDate != snap.Current.Date
	out.Current.Date = newDate
	out.Current.Time = newTime
	if dateChanged {
		if out.Current.DayOfWeek, err = timeline.DayOfWeek(newDate); err != nil {
			return Snapshot{}, err
		}
		if out.Current.Season, err = timeline.Season(newDate); err != nil {
			return Snapshot{}, err
		}
	}
	out.Metadata.ElapsedHours += float64(minutes) / 60

	if reason != "" {
		out.History = append(out.History, HistoryEntry{
			Date:   newDate,
			Time:   newTime,
			Reason: reason,
		})
		if len(out.History) > historyTail {
			out.History = out.History[len(out.History)-historyTail:]
		}
	}
	return out, nil
}
