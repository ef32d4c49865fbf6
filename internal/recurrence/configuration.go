package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/recurrence-preview/internal/localization"
)

// TimeType selects between a single occurrence and a recurring rule.
type TimeType int

const (
	// TimeTypeOnce fires a single time at DateStep.
	TimeTypeOnce TimeType = iota
	// TimeTypeRecurring fires repeatedly according to RecurringKind.
	TimeTypeRecurring
)

// RecurringKind selects the generation algorithm for recurring schedules.
type RecurringKind int

const (
	// RecurringUnspecified indicates no recurring frequency was chosen.
	RecurringUnspecified RecurringKind = iota
	// RecurringDaily steps by a number of days from DateStep.
	RecurringDaily
	// RecurringWeekly selects weekdays in weeks stepped by WeekStep.
	RecurringWeekly
	// RecurringMonthly selects a day of the month or an ordinal weekday.
	RecurringMonthly
)

// DailyFrequency controls how a monthly-by-day date is expanded into times.
type DailyFrequency int

const (
	// DailyFrequencyOnce fires a single time at HourFrom.
	DailyFrequencyOnce DailyFrequency = iota
	// DailyFrequencyEvery fires every HourStep hours within the hour window.
	DailyFrequencyEvery
)

// WeekOrdinal picks which occurrence inside a month is selected.
type WeekOrdinal int

const (
	OrdinalFirst WeekOrdinal = iota
	OrdinalSecond
	OrdinalThird
	OrdinalFourth
	OrdinalLast
)

// DayCategory is the monthly selection target of a MonthlyMore rule.
type DayCategory int

const (
	DayCategoryUnspecified DayCategory = iota
	DayCategoryMonday
	DayCategoryTuesday
	DayCategoryWednesday
	DayCategoryThursday
	DayCategoryFriday
	DayCategorySaturday
	DayCategorySunday
	// DayCategoryAnyDay selects the ordinal calendar day of the month.
	DayCategoryAnyDay
	// DayCategoryWeekDay selects every Monday to Friday within the ordinal week.
	DayCategoryWeekDay
	// DayCategoryWeekendDay selects every Saturday and Sunday within the ordinal week.
	DayCategoryWeekendDay
)

// Weekdays holds the weekly day selection flags.
type Weekdays struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// AllWeekdays returns a selection with every day enabled.
func AllWeekdays() Weekdays {
	return Weekdays{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true, Saturday: true, Sunday: true}
}

// Selected lists the enabled days in Monday to Sunday order.
func (w Weekdays) Selected() []time.Weekday {
	flags := [7]bool{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
	days := make([]time.Weekday, 0, len(flags))
	for i, on := range flags {
		if on {
			days = append(days, time.Weekday((i+1)%7))
		}
	}
	return days
}

// Any reports whether at least one day is enabled.
func (w Weekdays) Any() bool {
	return w.Monday || w.Tuesday || w.Wednesday || w.Thursday || w.Friday || w.Saturday || w.Sunday
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay returns the time of day h:m.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// TimeOfDayOf extracts the wall-clock hour and minute of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("recurrence: invalid time of day %q", value)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// Valid reports whether t is a wall-clock time between 00:00 and 23:59.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

func timeOfDayFromMinutes(total int) TimeOfDay {
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// After reports whether t is later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes() > other.minutes()
}

// On places t on the calendar date of day, keeping day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// String formats t as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Configuration is the caller-owned recurrence definition. The engine reads
// it and never mutates it.
type Configuration struct {
	Enabled  bool       `json:"enabled"`
	TimeType TimeType   `json:"time_type"`
	DateStep *time.Time `json:"date_step,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	RecurringKind RecurringKind `json:"recurring_kind"`

	DailyStep int `json:"daily_step,omitempty"`

	WeekStep int      `json:"week_step,omitempty"`
	Weekdays Weekdays `json:"weekdays"`

	HourFrom *TimeOfDay `json:"hour_from,omitempty"`
	HourTo   *TimeOfDay `json:"hour_to,omitempty"`
	HourStep int        `json:"hour_step,omitempty"`

	MonthlyOnce           bool           `json:"monthly_once"`
	MonthlyOnceDay        int            `json:"monthly_once_day,omitempty"`
	MonthlyOnceMonthSteps int            `json:"monthly_once_month_steps,omitempty"`
	DailyFrequency        DailyFrequency `json:"daily_frequency"`

	MonthlyMore           bool        `json:"monthly_more"`
	WeekOrdinal           WeekOrdinal `json:"week_ordinal"`
	DayCategory           DayCategory `json:"day_category"`
	MonthlyMoreMonthSteps int         `json:"monthly_more_month_steps,omitempty"`

	Language localization.Language `json:"language"`
}

// Output is one generated occurrence together with the rule description.
type Output struct {
	OutputDate  time.Time `json:"output_date"`
	Description string    `json:"description"`
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	c.DateStep = clonePtr(c.DateStep)
	c.DateFrom = clonePtr(c.DateFrom)
	c.DateTo = clonePtr(c.DateTo)
	c.HourFrom = clonePtr(c.HourFrom)
	c.HourTo = clonePtr(c.HourTo)
	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
