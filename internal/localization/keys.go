package localization

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies one entry of the translation vocabulary.
type Key int

const (
	// Layouts are Go time layouts rather than prose.
	KeyDateLayout Key = iota
	KeyTimeLayout

	KeyDay
	KeyDays
	KeyHour
	KeyHours
	KeyWeek
	KeyWeeks
	KeyMonth
	KeyMonths

	KeyMonday
	KeyTuesday
	KeyWednesday
	KeyThursday
	KeyFriday
	KeySaturday
	KeySunday

	KeyAnyDay
	KeyWeekDay
	KeyWeekendDay

	KeyFirst
	KeySecond
	KeyThird
	KeyFourth
	KeyLast

	KeyAnd

	// Sentence templates take fmt verbs with explicit argument indexes so
	// translations may reorder them.
	KeyDisabledSentence
	KeyOnceSentence
	KeyDailySentence
	KeyWeeklySentence
	KeyMonthlyDaySentence
	KeyMonthlyOrdinalSentence
	KeyHourWindowClause
	KeySingleHourClause

	KeyErrMissingConfiguration
	KeyErrMissingDateConfiguration
	KeyErrMissingRecurringFrequency
	KeyErrInvalidDailyStep
	KeyErrInvalidWeeklyStep
	KeyErrMissingDaySelection
	KeyErrInvalidMonthlyOnceDay
	KeyErrInvalidMonthlyMonths
	KeyErrMissingDailyHourStep
	KeyErrHourFromAfterHourTo
	KeyErrMissingMonthlyConfiguration
	KeyErrMissingMonthlyDayFrequency
	KeyErrMissingMonthlyHourWindow
	KeyErrInvalidHourStep
	KeyErrInvalidTimeOfDay

	keyCount
)

// ErrUnknownKey is returned when a textual key has no matching Key.
var ErrUnknownKey = errors.New("localization: unknown key")

var keyNames = [keyCount]string{
	KeyDateLayout: "date_layout",
	KeyTimeLayout: "time_layout",

	KeyDay:    "day",
	KeyDays:   "days",
	KeyHour:   "hour",
	KeyHours:  "hours",
	KeyWeek:   "week",
	KeyWeeks:  "weeks",
	KeyMonth:  "month",
	KeyMonths: "months",

	KeyMonday:    "monday",
	KeyTuesday:   "tuesday",
	KeyWednesday: "wednesday",
	KeyThursday:  "thursday",
	KeyFriday:    "friday",
	KeySaturday:  "saturday",
	KeySunday:    "sunday",

	KeyAnyDay:     "any_day",
	KeyWeekDay:    "week_day",
	KeyWeekendDay: "weekend_day",

	KeyFirst:  "first",
	KeySecond: "second",
	KeyThird:  "third",
	KeyFourth: "fourth",
	KeyLast:   "last",

	KeyAnd: "and",

	KeyDisabledSentence:       "sentence_disabled",
	KeyOnceSentence:           "sentence_once",
	KeyDailySentence:          "sentence_daily",
	KeyWeeklySentence:         "sentence_weekly",
	KeyMonthlyDaySentence:     "sentence_monthly_day",
	KeyMonthlyOrdinalSentence: "sentence_monthly_ordinal",
	KeyHourWindowClause:       "clause_hour_window",
	KeySingleHourClause:       "clause_single_hour",

	KeyErrMissingConfiguration:        "error_missing_configuration",
	KeyErrMissingDateConfiguration:    "error_missing_date_configuration",
	KeyErrMissingRecurringFrequency:   "error_missing_recurring_frequency",
	KeyErrInvalidDailyStep:            "error_invalid_daily_step",
	KeyErrInvalidWeeklyStep:           "error_invalid_weekly_step",
	KeyErrMissingDaySelection:         "error_missing_day_selection",
	KeyErrInvalidMonthlyOnceDay:       "error_invalid_monthly_once_day",
	KeyErrInvalidMonthlyMonths:        "error_invalid_monthly_months",
	KeyErrMissingDailyHourStep:        "error_missing_daily_hour_step",
	KeyErrHourFromAfterHourTo:         "error_hour_from_after_hour_to",
	KeyErrMissingMonthlyConfiguration: "error_missing_monthly_configuration",
	KeyErrMissingMonthlyDayFrequency:  "error_missing_monthly_day_frequency",
	KeyErrMissingMonthlyHourWindow:    "error_missing_monthly_hour_window",
	KeyErrInvalidHourStep:             "error_invalid_hour_step",
	KeyErrInvalidTimeOfDay:            "error_invalid_time_of_day",
}

// Keys returns the full vocabulary in declaration order.
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for key := Key(0); key < keyCount; key++ {
		out = append(out, key)
	}
	return out
}

// Valid reports whether k belongs to the vocabulary.
func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}

// String returns the stable textual name used by override files and the
// translations table.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey resolves a textual key name.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for key, candidate := range keyNames {
		if candidate == name {
			return Key(key), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
