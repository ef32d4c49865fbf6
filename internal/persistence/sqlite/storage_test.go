package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/persistence/sqlite/migration"
	"github.com/example/recurrence-preview/internal/recurrence"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "preview.db")
	storage, err := Open(ctx, migration.TempFileTestSQLiteConfig(dsn), nil)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() {
		_ = storage.Close()
	})

	if err := storage.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return storage
}

func weeklyConfiguration() recurrence.Configuration {
	from := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	start, end := recurrence.NewTimeOfDay(8, 0), recurrence.NewTimeOfDay(12, 0)
	return recurrence.Configuration{
		Enabled:       true,
		TimeType:      recurrence.TimeTypeRecurring,
		RecurringKind: recurrence.RecurringWeekly,
		DateStep:      &from,
		DateFrom:      &from,
		DateTo:        &to,
		WeekStep:      2,
		Weekdays:      recurrence.Weekdays{Monday: true, Thursday: true},
		HourFrom:      &start,
		HourTo:        &end,
		HourStep:      2,
		Language:      localization.Spanish,
	}
}

func TestConfigurationRepository(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	base := time.Date(2024, time.May, 6, 9, 0, 0, 123456789, time.UTC)
	record := persistence.ConfigurationRecord{
		ID:            "cfg-1",
		Name:          "Standup",
		Configuration: weeklyConfiguration(),
		CreatedAt:     base,
		UpdatedAt:     base,
	}

	if err := storage.CreateConfiguration(ctx, record); err != nil {
		t.Fatalf("CreateConfiguration failed: %v", err)
	}
	if err := storage.CreateConfiguration(ctx, record); !errors.Is(err, persistence.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate id, got %v", err)
	}

	fetched, err := storage.GetConfiguration(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetConfiguration failed: %v", err)
	}
	if !reflect.DeepEqual(fetched, record) {
		t.Fatalf("unexpected record:\n got: %#v\nwant: %#v", fetched, record)
	}

	record.Name = "Standup (moved)"
	record.Configuration.WeekStep = 1
	record.UpdatedAt = base.Add(time.Hour)
	if err := storage.UpdateConfiguration(ctx, record); err != nil {
		t.Fatalf("UpdateConfiguration failed: %v", err)
	}
	fetched, err = storage.GetConfiguration(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetConfiguration after update failed: %v", err)
	}
	if fetched.Name != "Standup (moved)" || fetched.Configuration.WeekStep != 1 || !fetched.UpdatedAt.Equal(record.UpdatedAt) || !fetched.CreatedAt.Equal(base) {
		t.Fatalf("unexpected updated record: %#v", fetched)
	}

	if err := storage.DeleteConfiguration(ctx, record.ID); err != nil {
		t.Fatalf("DeleteConfiguration failed: %v", err)
	}
	if _, err := storage.GetConfiguration(ctx, record.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := storage.DeleteConfiguration(ctx, record.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if err := storage.UpdateConfiguration(ctx, record); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating a missing record, got %v", err)
	}
}

func TestConfigurationRepository_RejectsEmptyID(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.CreateConfiguration(context.Background(), persistence.ConfigurationRecord{Name: "nameless"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestConfigurationRepository_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	// Same second but different fractions must still sort chronologically.
	offsets := []time.Duration{2 * time.Second, 500 * time.Millisecond, 0, 500 * time.Millisecond}
	ids := []string{"d", "c", "b", "a"}
	for i, id := range ids {
		created := base.Add(offsets[i])
		record := persistence.ConfigurationRecord{
			ID:            id,
			Name:          fmt.Sprintf("record %s", id),
			Configuration: recurrence.Configuration{},
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		if err := storage.CreateConfiguration(ctx, record); err != nil {
			t.Fatalf("CreateConfiguration %s failed: %v", id, err)
		}
	}

	records, err := storage.ListConfigurations(ctx)
	if err != nil {
		t.Fatalf("ListConfigurations failed: %v", err)
	}
	var got []string
	for _, record := range records {
		got = append(got, record.ID)
	}
	if want := []string{"b", "a", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order %v, want %v", got, want)
	}
}

func TestTranslationRepository(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	stamp := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	first := persistence.Translation{Language: localization.Spanish, Key: localization.KeyDisabledSentence, Text: "Desactivada", UpdatedAt: stamp}
	if err := storage.UpsertTranslation(ctx, first); err != nil {
		t.Fatalf("UpsertTranslation failed: %v", err)
	}
	replaced := first
	replaced.Text = "Programación pausada"
	replaced.UpdatedAt = stamp.Add(time.Minute)
	if err := storage.UpsertTranslation(ctx, replaced); err != nil {
		t.Fatalf("UpsertTranslation replace failed: %v", err)
	}
	other := persistence.Translation{Language: localization.EnglishUS, Key: localization.KeyAnd, Text: "&", UpdatedAt: stamp}
	if err := storage.UpsertTranslation(ctx, other); err != nil {
		t.Fatalf("UpsertTranslation other failed: %v", err)
	}

	// Rows written by a newer build are ignored rather than failing the load.
	if _, err := storage.pool.DB().ExecContext(ctx,
		`INSERT INTO translations (language, message_key, text, updated_at) VALUES ('fr_FR', 'and', 'et', ?)`,
		formatTime(stamp)); err != nil {
		t.Fatalf("insert unknown row: %v", err)
	}

	translations, err := storage.ListTranslations(ctx)
	if err != nil {
		t.Fatalf("ListTranslations failed: %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("expected 2 translations, got %d: %#v", len(translations), translations)
	}
	if translations[0] != other || translations[1] != replaced {
		t.Fatalf("unexpected translations: %#v", translations)
	}

	overrides := persistence.TranslationOverrides(translations)
	catalog := localization.NewCatalog(overrides)
	if got := catalog.Translate(localization.KeyDisabledSentence, localization.Spanish); got != "Programación pausada" {
		t.Fatalf("override not applied, got %q", got)
	}

	invalid := persistence.Translation{Language: localization.Language(42), Key: localization.KeyAnd, Text: "x", UpdatedAt: stamp}
	if err := storage.UpsertTranslation(ctx, invalid); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestStorage_MigrateIsIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if err := storage.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	config := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 2}

	t.Run("retries busy errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := withRetry(context.Background(), config, ErrorMapper{}, func() error {
			calls++
			if calls < 3 {
				return errBusy
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Fatalf("expected success after 3 calls, got err=%v calls=%d", err, calls)
		}
	})

	t.Run("gives up after the limit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := withRetry(context.Background(), config, ErrorMapper{}, func() error {
			calls++
			return errBusy
		})
		if !errors.Is(err, errBusy) || calls != 3 {
			t.Fatalf("expected busy failure after 3 calls, got err=%v calls=%d", err, calls)
		}
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := withRetry(context.Background(), config, ErrorMapper{}, func() error {
			calls++
			return persistence.ErrNotFound
		})
		if !errors.Is(err, persistence.ErrNotFound) || calls != 1 {
			t.Fatalf("expected a single call, got err=%v calls=%d", err, calls)
		}
	})
}
