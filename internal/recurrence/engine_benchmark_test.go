package recurrence

import (
	"testing"
	"time"
)

func BenchmarkEngineComputeWeekly(b *testing.B) {
	engine := NewEngine(nil)
	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	until := start.AddDate(1, 0, 0)
	from, to := NewTimeOfDay(9, 0), NewTimeOfDay(17, 0)

	cfg := &Configuration{
		Enabled:       true,
		TimeType:      TimeTypeRecurring,
		RecurringKind: RecurringWeekly,
		DateStep:      &start,
		DateFrom:      &start,
		DateTo:        &until,
		WeekStep:      1,
		Weekdays:      Weekdays{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true},
		HourFrom:      &from,
		HourTo:        &to,
		HourStep:      1,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		outputs, err := engine.Compute(cfg, start)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if len(outputs) == 0 {
			b.Fatal("expected occurrences to be generated")
		}
	}
}

func BenchmarkEngineComputeMonthlyOrdinal(b *testing.B) {
	engine := NewEngine(nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := start.AddDate(10, 0, 0)
	from, to := NewTimeOfDay(6, 0), NewTimeOfDay(22, 0)

	cfg := &Configuration{
		Enabled:               true,
		TimeType:              TimeTypeRecurring,
		RecurringKind:         RecurringMonthly,
		DateStep:              &start,
		DateFrom:              &start,
		DateTo:                &until,
		MonthlyMore:           true,
		WeekOrdinal:           OrdinalLast,
		DayCategory:           DayCategoryWeekDay,
		MonthlyMoreMonthSteps: 1,
		HourFrom:              &from,
		HourTo:                &to,
		HourStep:              2,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Compute(cfg, start); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
