package testfixtures

import (
	"context"
	"testing"

	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

func TestConfigurationFixturesAreValid(t *testing.T) {
	engine := recurrence.NewEngine(nil)
	for name, tc := range map[string]struct {
		cfg  recurrence.Configuration
		want int
	}{
		"once":         {cfg: OnceConfiguration(), want: 1},
		"daily":        {cfg: DailyConfiguration(), want: 3},
		"weekly":       {cfg: WeeklyConfiguration(), want: 8},
		"monthly once": {cfg: MonthlyOnceConfiguration(), want: 5},
		"monthly more": {cfg: MonthlyMoreConfiguration(), want: 10},
	} {
		outputs, err := engine.Compute(&tc.cfg, ReferenceTime())
		if err != nil {
			t.Fatalf("%s: Compute returned error: %v", name, err)
		}
		if len(outputs) != tc.want {
			t.Fatalf("%s: expected %d occurrences, got %d", name, tc.want, len(outputs))
		}
	}
}

func TestConfigurationOptions(t *testing.T) {
	from := ReferenceTime().AddDate(0, 1, 0)
	cfg := WeeklyConfiguration(
		WithLanguage(localization.Spanish),
		WithDateRange(from, from.AddDate(0, 0, 6)),
		WithWeekdays(recurrence.Weekdays{Tuesday: true, Thursday: true}),
		WithHourWindow(recurrence.TimeOfDay{Hour: 7, Minute: 30}, recurrence.TimeOfDay{}, 1),
	)

	if cfg.Language != localization.Spanish {
		t.Fatalf("language = %v", cfg.Language)
	}
	if !cfg.DateFrom.Equal(from) || cfg.HourTo != nil {
		t.Fatalf("unexpected range or window: %v %v", cfg.DateFrom, cfg.HourTo)
	}

	outputs, err := recurrence.NewEngine(nil).Compute(&cfg, ReferenceTime())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(outputs))
	}
	if got := outputs[0].OutputDate; got.Hour() != 7 || got.Minute() != 30 {
		t.Fatalf("first occurrence at %v", got)
	}

	if disabled := DailyConfiguration(WithDisabled()); disabled.Enabled || disabled.DailyStep != 1 {
		t.Fatalf("WithDisabled changed more than Enabled: %+v", disabled)
	}
}

func TestStoredConfigurationFixturesAreDistinct(t *testing.T) {
	first, second := NewStoredConfiguration(), NewStoredConfiguration(WithStoredName("custom"))
	if first.ID == second.ID {
		t.Fatalf("fixtures share ID %q", first.ID)
	}
	if !second.CreatedAt.After(first.CreatedAt) {
		t.Fatalf("expected later creation time, got %v then %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Name != "custom" {
		t.Fatalf("name = %q", second.Name)
	}
}

func TestSQLiteHarness(t *testing.T) {
	harness := NewSQLiteHarness(t, nil)
	ctx := context.Background()

	record := NewConfigurationRecord(WithStoredID("harness"), WithStoredConfiguration(MonthlyMoreConfiguration()))
	if err := harness.Configurations.CreateConfiguration(ctx, record); err != nil {
		t.Fatalf("CreateConfiguration returned error: %v", err)
	}

	got, err := harness.Configurations.GetConfiguration(ctx, "harness")
	if err != nil {
		t.Fatalf("GetConfiguration returned error: %v", err)
	}
	if got.Configuration.DayCategory != recurrence.DayCategoryTuesday {
		t.Fatalf("day category = %v", got.Configuration.DayCategory)
	}

	if err := harness.Storage.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	harness.Close()
	if err := harness.Storage.Ping(ctx); err == nil {
		t.Fatal("expected Ping to fail after Close")
	}
}
