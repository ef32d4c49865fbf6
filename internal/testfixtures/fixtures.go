package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/recurrence"
)

var configurationCounter uint64

var referenceTime = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// Every configuration fixture starts on this date.
func ReferenceTime() time.Time {
	return referenceTime
}

// ConfigurationOption adjusts a configuration fixture.
type ConfigurationOption func(*recurrence.Configuration)

func build(cfg recurrence.Configuration, opts []ConfigurationOption) recurrence.Configuration {
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func timePtr(t time.Time) *time.Time { return &t }

func clock(hour, minute int) *recurrence.TimeOfDay {
	t := recurrence.TimeOfDay{Hour: hour, Minute: minute}
	return &t
}

// OnceConfiguration fires a single time at 10:00 five days after ReferenceTime.
func OnceConfiguration(opts ...ConfigurationOption) recurrence.Configuration {
	at := referenceTime.AddDate(0, 0, 5).Add(10 * time.Hour)
	return build(recurrence.Configuration{
		Enabled:  true,
		TimeType: recurrence.TimeTypeOnce,
		DateStep: timePtr(at),
		DateFrom: timePtr(referenceTime),
	}, opts)
}

// DailyConfiguration steps from January 1st 2021 at 14:00 to January 4th, so
// it fires on the 2nd, 3rd and 4th.
func DailyConfiguration(opts ...ConfigurationOption) recurrence.Configuration {
	start := referenceTime.Add(14 * time.Hour)
	return build(recurrence.Configuration{
		Enabled:       true,
		TimeType:      recurrence.TimeTypeRecurring,
		RecurringKind: recurrence.RecurringDaily,
		DateStep:      timePtr(start),
		DateFrom:      timePtr(start),
		DateTo:        timePtr(start.AddDate(0, 0, 3)),
		DailyStep:     1,
	}, opts)
}

// WeeklyConfiguration fires on Mondays of January 2021 at 09:00 and 10:00,
// eight occurrences in total.
func WeeklyConfiguration(opts ...ConfigurationOption) recurrence.Configuration {
	return build(recurrence.Configuration{
		Enabled:       true,
		TimeType:      recurrence.TimeTypeRecurring,
		RecurringKind: recurrence.RecurringWeekly,
		DateStep:      timePtr(referenceTime),
		DateFrom:      timePtr(referenceTime),
		DateTo:        timePtr(referenceTime.AddDate(0, 0, 30)),
		WeekStep:      1,
		Weekdays:      recurrence.Weekdays{Monday: true},
		HourFrom:      clock(9, 0),
		HourTo:        clock(10, 0),
		HourStep:      1,
	}, opts)
}

// MonthlyOnceConfiguration fires on the 15th of every month from January to
// May 2021 at 08:00.
func MonthlyOnceConfiguration(opts ...ConfigurationOption) recurrence.Configuration {
	return build(recurrence.Configuration{
		Enabled:               true,
		TimeType:              recurrence.TimeTypeRecurring,
		RecurringKind:         recurrence.RecurringMonthly,
		DateStep:              timePtr(referenceTime),
		DateFrom:              timePtr(referenceTime),
		DateTo:                timePtr(referenceTime.AddDate(0, 5, 0)),
		MonthlyOnce:           true,
		MonthlyOnceDay:        15,
		MonthlyOnceMonthSteps: 1,
		HourFrom:              clock(8, 0),
		HourStep:              1,
	}, opts)
}

// MonthlyMoreConfiguration fires on the second Tuesday of every month from
// January to May 2021 at 08:00 and 09:00.
func MonthlyMoreConfiguration(opts ...ConfigurationOption) recurrence.Configuration {
	return build(recurrence.Configuration{
		Enabled:               true,
		TimeType:              recurrence.TimeTypeRecurring,
		RecurringKind:         recurrence.RecurringMonthly,
		DateStep:              timePtr(referenceTime),
		DateFrom:              timePtr(referenceTime),
		DateTo:                timePtr(referenceTime.AddDate(0, 5, 0)),
		MonthlyMore:           true,
		WeekOrdinal:           recurrence.OrdinalSecond,
		DayCategory:           recurrence.DayCategoryTuesday,
		MonthlyMoreMonthSteps: 1,
		HourFrom:              clock(8, 0),
		HourTo:                clock(9, 0),
		HourStep:              1,
	}, opts)
}

// WithLanguage sets the description language.
func WithLanguage(lang localization.Language) ConfigurationOption {
	return func(cfg *recurrence.Configuration) {
		cfg.Language = lang
	}
}

// WithDisabled turns the configuration off without clearing its fields.
func WithDisabled() ConfigurationOption {
	return func(cfg *recurrence.Configuration) {
		cfg.Enabled = false
	}
}

// WithDateRange replaces DateFrom and DateTo.
func WithDateRange(from, to time.Time) ConfigurationOption {
	return func(cfg *recurrence.Configuration) {
		cfg.DateFrom = timePtr(from)
		cfg.DateTo = timePtr(to)
	}
}

// WithHourWindow replaces the hour window. A zero to leaves HourTo unset.
func WithHourWindow(from, to recurrence.TimeOfDay, step int) ConfigurationOption {
	return func(cfg *recurrence.Configuration) {
		cfg.HourFrom = clock(from.Hour, from.Minute)
		cfg.HourTo = nil
		if to != (recurrence.TimeOfDay{}) {
			cfg.HourTo = clock(to.Hour, to.Minute)
		}
		cfg.HourStep = step
	}
}

// WithWeekdays replaces the weekly day selection.
func WithWeekdays(days recurrence.Weekdays) ConfigurationOption {
	return func(cfg *recurrence.Configuration) {
		cfg.Weekdays = days
	}
}

// StoredOption adjusts a stored configuration fixture.
type StoredOption func(*application.StoredConfiguration)

// NewStoredConfiguration returns a named weekly configuration with a unique
// identifier. Successive fixtures are created one minute apart.
func NewStoredConfiguration(opts ...StoredOption) application.StoredConfiguration {
	idx := atomic.AddUint64(&configurationCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	stored := application.StoredConfiguration{
		ID:            fmt.Sprintf("cfg-%03d", idx),
		Name:          fmt.Sprintf("Configuration %03d", idx),
		Configuration: WeeklyConfiguration(),
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	for _, opt := range opts {
		opt(&stored)
	}
	return stored
}

// WithStoredID overrides the identifier.
func WithStoredID(id string) StoredOption {
	return func(s *application.StoredConfiguration) {
		s.ID = id
	}
}

// WithStoredName overrides the name.
func WithStoredName(name string) StoredOption {
	return func(s *application.StoredConfiguration) {
		s.Name = name
	}
}

// WithStoredConfiguration replaces the recurrence configuration.
func WithStoredConfiguration(cfg recurrence.Configuration) StoredOption {
	return func(s *application.StoredConfiguration) {
		s.Configuration = cfg
	}
}

// WithStoredTimestamps overrides CreatedAt and UpdatedAt.
func WithStoredTimestamps(created, updated time.Time) StoredOption {
	return func(s *application.StoredConfiguration) {
		s.CreatedAt = created
		s.UpdatedAt = updated
	}
}

// ConfigurationRecord converts a stored configuration fixture into its
// persistence representation.
func ConfigurationRecord(stored application.StoredConfiguration) persistence.ConfigurationRecord {
	return persistence.ConfigurationRecord{
		ID:            stored.ID,
		Name:          stored.Name,
		Configuration: stored.Configuration.Clone(),
		CreatedAt:     stored.CreatedAt,
		UpdatedAt:     stored.UpdatedAt,
	}
}

// NewConfigurationRecord is shorthand for ConfigurationRecord(NewStoredConfiguration(opts...)).
func NewConfigurationRecord(opts ...StoredOption) persistence.ConfigurationRecord {
	return ConfigurationRecord(NewStoredConfiguration(opts...))
}
