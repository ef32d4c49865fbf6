package recurrence

import (
	"iter"
	"time"
)

// resolveOnce returns DateStep when it lies strictly after reference and
// reference otherwise.
func resolveOnce(cfg *Configuration, reference time.Time) time.Time {
	if cfg.DateStep.After(reference) {
		return *cfg.DateStep
	}
	return reference
}

// firstDaily is the first daily occurrence: one day after DateStep.
func firstDaily(cfg *Configuration) time.Time {
	return cfg.DateStep.AddDate(0, 0, 1)
}

// generateDaily emits firstDaily, then every DailyStep days, up to and
// including DateTo. Each occurrence keeps the wall-clock time of DateStep.
func generateDaily(cfg *Configuration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		start := firstDaily(cfg)
		end := *cfg.DateTo
		if start.After(end) {
			return
		}

		steps := daysBetween(start, end) / cfg.DailyStep
		for i := 0; i <= steps; i++ {
			current := start.AddDate(0, 0, i*cfg.DailyStep)
			// Same calendar day as DateTo but a later wall-clock time.
			if current.After(end) || !yield(current) {
				return
			}
		}
	}
}

// generateWeekly walks Monday-aligned weeks starting with the week that
// contains DateFrom, WeekStep weeks at a time, and keeps every selected
// weekday whose calendar date lies in [DateFrom, DateTo].
func generateWeekly(cfg *Configuration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		from, to := dateOf(*cfg.DateFrom), dateOf(*cfg.DateTo)
		if to.Before(from) {
			return
		}

		days := cfg.Weekdays.Selected()
		weekStart := from.AddDate(0, 0, -mondayOffset(from.Weekday()))
		weeks := daysBetween(weekStart, to) / (7 * cfg.WeekStep)
		for w := 0; w <= weeks; w++ {
			week := weekStart.AddDate(0, 0, w*7*cfg.WeekStep)
			for _, day := range days {
				candidate := week.AddDate(0, 0, mondayOffset(day))
				if candidate.Before(from) || candidate.After(to) {
					continue
				}
				if !yield(candidate) {
					return
				}
			}
		}
	}
}

// generateMonthlyOnce picks day MonthlyOnceDay of every stepped month.
// Months without that day are skipped; nothing is clamped or rolled over.
func generateMonthlyOnce(cfg *Configuration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		from, to := dateOf(*cfg.DateFrom), dateOf(*cfg.DateTo)
		if to.Before(from) {
			return
		}

		forEachMonth(from, to, cfg.MonthlyOnceMonthSteps, func(year int, month time.Month) bool {
			if cfg.MonthlyOnceDay > daysIn(year, month) {
				return true
			}
			candidate := time.Date(year, month, cfg.MonthlyOnceDay, 0, 0, 0, 0, from.Location())
			if candidate.Before(from) || candidate.After(to) {
				return true
			}
			return yield(candidate)
		})
	}
}

// generateMonthlyMore resolves (WeekOrdinal, DayCategory) in every stepped
// month and keeps the dates inside [DateFrom, DateTo].
func generateMonthlyMore(cfg *Configuration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		from, to := dateOf(*cfg.DateFrom), dateOf(*cfg.DateTo)
		if to.Before(from) {
			return
		}

		forEachMonth(from, to, cfg.MonthlyMoreMonthSteps, func(year int, month time.Month) bool {
			for _, day := range ordinalDays(year, month, cfg.WeekOrdinal, cfg.DayCategory) {
				candidate := time.Date(year, month, day, 0, 0, 0, 0, from.Location())
				if candidate.Before(from) || candidate.After(to) {
					continue
				}
				if !yield(candidate) {
					return false
				}
			}
			return true
		})
	}
}

// ordinalDays returns the ascending days of month selected by the ordinal
// and category.
//
// Named weekdays select the n-th such weekday counted from day 1, or the
// final one for OrdinalLast. AnyDay selects the n-th calendar day, or the
// last day of the month. WeekDay and WeekendDay expand to every matching
// day of the ordinal seven-day block (days 1-7, 8-14, 15-21, 22-28, or the
// final seven days for OrdinalLast); a weekend whose Saturday closes the
// block continues into the following Sunday when the month has one.
func ordinalDays(year int, month time.Month, ordinal WeekOrdinal, category DayCategory) []int {
	length := daysIn(year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	weekdayOf := func(day int) time.Weekday {
		return time.Weekday((int(first) + day - 1) % 7)
	}

	if target, ok := category.weekday(); ok {
		if ordinal == OrdinalLast {
			back := (int(weekdayOf(length)) - int(target) + 7) % 7
			return []int{length - back}
		}
		day := 1 + (int(target)-int(first)+7)%7 + 7*int(ordinal)
		return []int{day}
	}

	if category == DayCategoryAnyDay {
		if ordinal == OrdinalLast {
			return []int{length}
		}
		return []int{int(ordinal) + 1}
	}

	blockStart := 1 + 7*int(ordinal)
	if ordinal == OrdinalLast {
		blockStart = length - 6
	}
	blockEnd := blockStart + 6

	days := make([]int, 0, 7)
	for day := blockStart; day <= blockEnd; day++ {
		wd := weekdayOf(day)
		weekend := wd == time.Saturday || wd == time.Sunday
		if weekend == (category == DayCategoryWeekendDay) {
			days = append(days, day)
		}
	}
	if category == DayCategoryWeekendDay && weekdayOf(blockEnd) == time.Saturday && blockEnd < length {
		days = append(days, blockEnd+1)
	}
	return days
}

// forEachMonth calls fn for the month of from and every steps-th month after
// it, while the first of that month is not after to. It stops early when fn
// returns false.
func forEachMonth(from, to time.Time, steps int, fn func(year int, month time.Month) bool) {
	firstOfMonth := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	months := monthsBetween(firstOfMonth, to) / steps
	for i := 0; i <= months; i++ {
		current := firstOfMonth.AddDate(0, i*steps, 0)
		if !fn(current.Year(), current.Month()) {
			return
		}
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring wall-clock time and
// daylight-saving shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// mondayOffset is the distance of day from the preceding Monday.
func mondayOffset(day time.Weekday) int {
	return (int(day) + 6) % 7
}
