package recurrence

import (
	"fmt"
	"strings"
	"time"
)

var (
	timeTypeNames       = []string{"once", "recurring"}
	recurringKindNames  = []string{"", "daily", "weekly", "monthly"}
	dailyFrequencyNames = []string{"once", "every"}
	weekOrdinalNames    = []string{"first", "second", "third", "fourth", "last"}
	dayCategoryNames    = []string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "any_day", "week_day", "weekend_day"}
)

func enumName[T ~int](names []string, value T, kind string) string {
	if int(value) < 0 || int(value) >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, int(value))
	}
	return names[value]
}

func marshalEnum[T ~int](names []string, value T, kind string) ([]byte, error) {
	if int(value) < 0 || int(value) >= len(names) {
		return nil, fmt.Errorf("recurrence: invalid %s %d", kind, int(value))
	}
	return []byte(names[value]), nil
}

func parseEnum[T ~int](names []string, text string, kind string) (T, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for i, name := range names {
		if name == text {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("recurrence: unknown %s %q", kind, text)
}

func (t TimeType) String() string { return enumName(timeTypeNames, t, "TimeType") }

func (t TimeType) MarshalText() ([]byte, error) { return marshalEnum(timeTypeNames, t, "time type") }

func (t *TimeType) UnmarshalText(text []byte) error {
	v, err := parseEnum[TimeType](timeTypeNames, string(text), "time type")
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (k RecurringKind) String() string { return enumName(recurringKindNames, k, "RecurringKind") }

func (k RecurringKind) MarshalText() ([]byte, error) {
	return marshalEnum(recurringKindNames, k, "recurring kind")
}

func (k *RecurringKind) UnmarshalText(text []byte) error {
	v, err := parseEnum[RecurringKind](recurringKindNames, string(text), "recurring kind")
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (f DailyFrequency) String() string { return enumName(dailyFrequencyNames, f, "DailyFrequency") }

func (f DailyFrequency) MarshalText() ([]byte, error) {
	return marshalEnum(dailyFrequencyNames, f, "daily frequency")
}

func (f *DailyFrequency) UnmarshalText(text []byte) error {
	v, err := parseEnum[DailyFrequency](dailyFrequencyNames, string(text), "daily frequency")
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (o WeekOrdinal) String() string { return enumName(weekOrdinalNames, o, "WeekOrdinal") }

func (o WeekOrdinal) MarshalText() ([]byte, error) {
	return marshalEnum(weekOrdinalNames, o, "week ordinal")
}

func (o *WeekOrdinal) UnmarshalText(text []byte) error {
	v, err := parseEnum[WeekOrdinal](weekOrdinalNames, string(text), "week ordinal")
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o WeekOrdinal) valid() bool {
	return o >= OrdinalFirst && o <= OrdinalLast
}

func (c DayCategory) String() string { return enumName(dayCategoryNames, c, "DayCategory") }

func (c DayCategory) MarshalText() ([]byte, error) {
	return marshalEnum(dayCategoryNames, c, "day category")
}

func (c *DayCategory) UnmarshalText(text []byte) error {
	v, err := parseEnum[DayCategory](dayCategoryNames, string(text), "day category")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c DayCategory) valid() bool {
	return c > DayCategoryUnspecified && c <= DayCategoryWeekendDay
}

// weekday maps a named-weekday category onto time.Weekday.
func (c DayCategory) weekday() (time.Weekday, bool) {
	if c < DayCategoryMonday || c > DayCategorySunday {
		return 0, false
	}
	return time.Weekday(int(c-DayCategoryMonday+1) % 7), true
}
