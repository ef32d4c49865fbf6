package recurrence

import (
	"errors"

	"github.com/example/recurrence-preview/internal/localization"
)

// ErrorKind discriminates configuration validation failures.
type ErrorKind string

const (
	KindMissingConfiguration        ErrorKind = "MissingConfiguration"
	KindMissingDateConfiguration    ErrorKind = "MissingDateConfiguration"
	KindMissingRecurringFrequency   ErrorKind = "MissingRecurringFrequency"
	KindInvalidDailyStep            ErrorKind = "InvalidDailyStep"
	KindInvalidWeeklyStep           ErrorKind = "InvalidWeeklyStep"
	KindMissingDaySelection         ErrorKind = "MissingDaySelection"
	KindInvalidMonthlyOnceDay       ErrorKind = "InvalidMonthlyOnceDay"
	KindInvalidMonthlyMonths        ErrorKind = "InvalidMonthlyMonths"
	KindMissingDailyHourStep        ErrorKind = "MissingDailyHourStep"
	KindHourFromAfterHourTo         ErrorKind = "HourFromAfterHourTo"
	KindMissingMonthlyConfiguration ErrorKind = "MissingMonthlyConfiguration"
	KindMissingMonthlyDayFrequency  ErrorKind = "MissingMonthlyDayFrequency"
	KindMissingMonthlyHourWindow    ErrorKind = "MissingMonthlyHourWindow"
	KindInvalidHourStep             ErrorKind = "InvalidHourStep"
	KindInvalidTimeOfDay            ErrorKind = "InvalidTimeOfDay"
)

var kindKeys = map[ErrorKind]localization.Key{
	KindMissingConfiguration:        localization.KeyErrMissingConfiguration,
	KindMissingDateConfiguration:    localization.KeyErrMissingDateConfiguration,
	KindMissingRecurringFrequency:   localization.KeyErrMissingRecurringFrequency,
	KindInvalidDailyStep:            localization.KeyErrInvalidDailyStep,
	KindInvalidWeeklyStep:           localization.KeyErrInvalidWeeklyStep,
	KindMissingDaySelection:         localization.KeyErrMissingDaySelection,
	KindInvalidMonthlyOnceDay:       localization.KeyErrInvalidMonthlyOnceDay,
	KindInvalidMonthlyMonths:        localization.KeyErrInvalidMonthlyMonths,
	KindMissingDailyHourStep:        localization.KeyErrMissingDailyHourStep,
	KindHourFromAfterHourTo:         localization.KeyErrHourFromAfterHourTo,
	KindMissingMonthlyConfiguration: localization.KeyErrMissingMonthlyConfiguration,
	KindMissingMonthlyDayFrequency:  localization.KeyErrMissingMonthlyDayFrequency,
	KindMissingMonthlyHourWindow:    localization.KeyErrMissingMonthlyHourWindow,
	KindInvalidHourStep:             localization.KeyErrInvalidHourStep,
	KindInvalidTimeOfDay:            localization.KeyErrInvalidTimeOfDay,
}

// ScheduleError reports the first configuration rule that failed. Key names
// the localized message for the failure.
type ScheduleError struct {
	Kind ErrorKind
	Key  localization.Key
}

func newScheduleError(kind ErrorKind) *ScheduleError {
	return &ScheduleError{Kind: kind, Key: kindKeys[kind]}
}

// Error implements the error interface with the en_GB message.
func (e *ScheduleError) Error() string {
	if e == nil {
		return ""
	}
	return "recurrence: " + string(e.Kind) + ": " + localization.Default().Translate(e.Key, localization.EnglishGB)
}

// Is reports whether target is a ScheduleError of the same kind.
func (e *ScheduleError) Is(target error) bool {
	var other *ScheduleError
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

// Message renders the failure in lang using tr.
func (e *ScheduleError) Message(tr localization.Translator, lang localization.Language) string {
	if tr == nil {
		tr = localization.Default()
	}
	return tr.Translate(e.Key, lang)
}

// KindOf extracts the ErrorKind from err, or "" when err is not a ScheduleError.
func KindOf(err error) ErrorKind {
	var sErr *ScheduleError
	if errors.As(err, &sErr) {
		return sErr.Kind
	}
	return ""
}

// ErrNotRepresentable is returned when a configuration has no RFC 5545
// equivalent.
var ErrNotRepresentable = errors.New("recurrence: configuration cannot be expressed as an RRULE")
