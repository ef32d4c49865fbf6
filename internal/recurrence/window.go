package recurrence

import (
	"iter"
	"slices"
	"time"
)

// hourWindow is a resolved, inclusive [from, to] time range stepped by step hours.
type hourWindow struct {
	from TimeOfDay
	to   TimeOfDay
	step int
}

// slots lists the times of day in the window. Both bounds are always
// present, so a step that does not divide the window still ends on to.
func (w hourWindow) slots() []TimeOfDay {
	if w.from.After(w.to) {
		return nil
	}
	step := w.step
	if step <= 0 {
		return []TimeOfDay{w.from}
	}

	start, end := w.from.minutes(), w.to.minutes()
	if step > (end-start)/60 {
		// No intermediate slot fits.
		if start == end {
			return []TimeOfDay{w.from}
		}
		return []TimeOfDay{w.from, w.to}
	}

	stepMinutes := step * 60
	out := make([]TimeOfDay, 0, (end-start)/stepMinutes+2)
	last := start
	for current := start; current <= end; current += stepMinutes {
		out = append(out, timeOfDayFromMinutes(current))
		last = current
		if end-current < stepMinutes {
			break
		}
	}
	if last != end {
		out = append(out, w.to)
	}
	return out
}

func (w hourWindow) single() bool {
	return w.from == w.to
}

// ExpandWindow places every slot of the [from, to] window stepped by step
// hours on each date. The result is grouped by date in input order, then by
// ascending time of day.
func ExpandWindow(dates []time.Time, from, to TimeOfDay, step int) []time.Time {
	return slices.Collect(hourWindow{from: from, to: to, step: step}.expand(slices.Values(dates)))
}

func (w hourWindow) expand(dates iter.Seq[time.Time]) iter.Seq[time.Time] {
	slots := w.slots()
	return func(yield func(time.Time) bool) {
		if len(slots) == 0 {
			return
		}
		for date := range dates {
			for _, slot := range slots {
				if !yield(slot.On(date)) {
					return
				}
			}
		}
	}
}

// resolveWindow derives the hour window for weekly and monthly kinds. A
// missing HourFrom falls back to the time of day of DateStep and a missing
// HourTo collapses the window onto HourFrom. Monthly-by-day rules with a
// once-a-day frequency fire at HourFrom only.
func resolveWindow(cfg *Configuration) hourWindow {
	from := TimeOfDayOf(*cfg.DateStep)
	if cfg.HourFrom != nil {
		from = *cfg.HourFrom
	}
	to := from
	if cfg.HourTo != nil {
		to = *cfg.HourTo
	}
	if cfg.RecurringKind == RecurringMonthly && cfg.MonthlyOnce && cfg.DailyFrequency == DailyFrequencyOnce {
		to = from
	}
	return hourWindow{from: from, to: to, step: cfg.HourStep}
}
