package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ToRRule expresses cfg as an RFC 5545 recurrence rule whose expansion
// matches Occurrences. Disabled and once configurations, weekend-day
// categories and hour windows whose slots differ in minute return
// ErrNotRepresentable.
func ToRRule(cfg *Configuration) (*rrule.RRule, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if !cfg.Enabled || cfg.TimeType != TimeTypeRecurring {
		return nil, ErrNotRepresentable
	}

	if cfg.RecurringKind == RecurringDaily {
		return newRRule(rrule.ROption{
			Freq:     rrule.DAILY,
			Interval: cfg.DailyStep,
			Dtstart:  firstDaily(cfg),
			Until:    *cfg.DateTo,
		})
	}

	from := dateOf(*cfg.DateFrom)
	to := dateOf(*cfg.DateTo)
	opt := rrule.ROption{
		Dtstart: from,
		Until:   time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location()),
		Wkst:    rrule.MO,
	}
	if err := applyWindow(&opt, resolveWindow(cfg)); err != nil {
		return nil, err
	}

	switch cfg.RecurringKind {
	case RecurringWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = cfg.WeekStep
		for _, day := range cfg.Weekdays.Selected() {
			opt.Byweekday = append(opt.Byweekday, toRRuleWeekday(day))
		}
	case RecurringMonthly:
		opt.Freq = rrule.MONTHLY
		if cfg.MonthlyOnce {
			opt.Interval = cfg.MonthlyOnceMonthSteps
			opt.Bymonthday = []int{cfg.MonthlyOnceDay}
			break
		}
		opt.Interval = cfg.MonthlyMoreMonthSteps
		if err := applyOrdinal(&opt, cfg.WeekOrdinal, cfg.DayCategory); err != nil {
			return nil, err
		}
	default:
		return nil, ErrNotRepresentable
	}

	return newRRule(opt)
}

func newRRule(opt rrule.ROption) (*rrule.RRule, error) {
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("recurrence: build rrule: %w", err)
	}
	return rule, nil
}

func applyWindow(opt *rrule.ROption, w hourWindow) error {
	slots := w.slots()
	if len(slots) == 0 {
		return ErrNotRepresentable
	}
	minute := slots[0].Minute
	hours := make([]int, 0, len(slots))
	for _, slot := range slots {
		if slot.Minute != minute {
			return ErrNotRepresentable
		}
		hours = append(hours, slot.Hour)
	}
	opt.Byhour = hours
	opt.Byminute = []int{minute}
	opt.Bysecond = []int{0}
	return nil
}

func applyOrdinal(opt *rrule.ROption, ordinal WeekOrdinal, category DayCategory) error {
	n := int(ordinal) + 1
	if ordinal == OrdinalLast {
		n = -1
	}

	if day, ok := category.weekday(); ok {
		wd := toRRuleWeekday(day)
		opt.Byweekday = []rrule.Weekday{wd.Nth(n)}
		return nil
	}

	switch category {
	case DayCategoryAnyDay:
		opt.Bymonthday = []int{n}
	case DayCategoryWeekDay:
		// Intersect the ordinal seven-day block with Monday to Friday.
		for i := 0; i < 7; i++ {
			if ordinal == OrdinalLast {
				opt.Bymonthday = append(opt.Bymonthday, -7+i)
			} else {
				opt.Bymonthday = append(opt.Bymonthday, 7*int(ordinal)+1+i)
			}
		}
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	default:
		return ErrNotRepresentable
	}
	return nil
}

func toRRuleWeekday(day time.Weekday) rrule.Weekday {
	switch day {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}
