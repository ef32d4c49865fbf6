package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/recurrence-preview/internal/config"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/persistence/memory"
)

func testConfig(storage, dsn string) config.Config {
	return config.Config{
		HTTPPort:        8080,
		Storage:         storage,
		SQLiteDSN:       dsn,
		DefaultLanguage: localization.EnglishGB,
		CacheTTL:        time.Minute,
		CacheEntries:    8,
		LogLevel:        "info",
		ShutdownTimeout: time.Second,
		CalendarDomain:  "preview.test",
		EventDuration:   30 * time.Minute,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const weeklyConfiguration = `{
	"enabled": true,
	"time_type": "recurring",
	"recurring_kind": "weekly",
	"date_step": "2021-01-01T00:00:00Z",
	"date_from": "2021-01-01T00:00:00Z",
	"date_to": "2021-01-31T00:00:00Z",
	"week_step": 1,
	"weekdays": {"monday": true},
	"hour_from": "09:00",
	"hour_to": "10:00",
	"hour_step": 1
}`

func serveRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestNewServer_StoresAndPreviews(t *testing.T) {
	ctx := context.Background()

	for name, cfg := range map[string]config.Config{
		"memory": testConfig(config.StorageMemory, ""),
		"sqlite": testConfig(config.StorageSQLite, filepath.Join(t.TempDir(), "preview.db")),
	} {
		t.Run(name, func(t *testing.T) {
			srv, err := newServer(ctx, cfg, discardLogger())
			if err != nil {
				t.Fatalf("newServer returned error: %v", err)
			}
			t.Cleanup(func() { _ = srv.Close() })

			rec := serveRequest(t, srv.Handler, http.MethodGet, "/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("health returned %d", rec.Code)
			}

			rec = serveRequest(t, srv.Handler, http.MethodPost, "/configurations", `{"name": "Standup", "configuration": `+weeklyConfiguration+`}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
			}
			location := rec.Header().Get("Location")
			if !strings.HasPrefix(location, "/configurations/") {
				t.Fatalf("unexpected Location %q", location)
			}

			rec = serveRequest(t, srv.Handler, http.MethodGet, location+"/preview", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("preview returned %d: %s", rec.Code, rec.Body.String())
			}
			var preview struct {
				RRule       string            `json:"rrule"`
				Occurrences []json.RawMessage `json:"occurrences"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
				t.Fatalf("decode preview: %v", err)
			}
			if len(preview.Occurrences) != 8 {
				t.Fatalf("expected 8 occurrences, got %d", len(preview.Occurrences))
			}
			if !strings.Contains(preview.RRule, "FREQ=WEEKLY") {
				t.Fatalf("unexpected rrule %q", preview.RRule)
			}

			rec = serveRequest(t, srv.Handler, http.MethodGet, location+"/calendar.ics", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("calendar returned %d", rec.Code)
			}
			if body := rec.Body.String(); !strings.Contains(body, "@preview.test") || strings.Count(body, "BEGIN:VEVENT") != 8 {
				t.Fatalf("unexpected calendar body:\n%s", body)
			}
		})
	}
}

func TestNewServer_UnknownConfiguration(t *testing.T) {
	srv, err := newServer(context.Background(), testConfig(config.StorageMemory, ""), discardLogger())
	if err != nil {
		t.Fatalf("newServer returned error: %v", err)
	}
	defer srv.Close()

	rec := serveRequest(t, srv.Handler, http.MethodGet, "/configurations/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNewServer_RejectsBadTranslationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.yaml")
	if err := os.WriteFile(path, []byte("fr_FR:\n  and: et\n"), 0o644); err != nil {
		t.Fatalf("write translations: %v", err)
	}

	cfg := testConfig(config.StorageMemory, "")
	cfg.TranslationFile = path
	if _, err := newServer(context.Background(), cfg, discardLogger()); err == nil {
		t.Fatal("expected an error for an unknown language")
	}
}

func TestLoadOverrides_DatabaseWins(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "translations.yaml")
	file := "es_ES:\n  error_missing_configuration: desde fichero\n  error_invalid_weekly_step: paso semanal\n"
	if err := os.WriteFile(path, []byte(file), 0o644); err != nil {
		t.Fatalf("write translations: %v", err)
	}

	store := memory.New()
	if err := store.UpsertTranslation(ctx, persistence.Translation{
		Language: localization.Spanish,
		Key:      localization.KeyErrMissingConfiguration,
		Text:     "desde base de datos",
	}); err != nil {
		t.Fatalf("UpsertTranslation returned error: %v", err)
	}

	overrides, err := loadOverrides(ctx, path, store)
	if err != nil {
		t.Fatalf("loadOverrides returned error: %v", err)
	}

	catalog := localization.NewCatalog(overrides)
	if got := catalog.Translate(localization.KeyErrMissingConfiguration, localization.Spanish); got != "desde base de datos" {
		t.Fatalf("database override lost: %q", got)
	}
	if got := catalog.Translate(localization.KeyErrInvalidWeeklyStep, localization.Spanish); got != "paso semanal" {
		t.Fatalf("file override lost: %q", got)
	}
	if got := catalog.Translate(localization.KeyErrInvalidWeeklyStep, localization.EnglishGB); got == "paso semanal" {
		t.Fatal("override leaked into another language")
	}
}

func TestConfigurationRepositoryAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := newConfigurationRepositoryAdapter(memory.New())

	if _, err := adapter.GetConfiguration(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected persistence.ErrNotFound, got %v", err)
	}

	list, err := adapter.ListConfigurations(ctx)
	if err != nil {
		t.Fatalf("ListConfigurations returned error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected an empty, non-nil list, got %#v", list)
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--env-file", "a.env", "--env-file=b.env", "--migrate-only"})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if len(opts.envFiles) != 2 || opts.envFiles[0] != "a.env" || opts.envFiles[1] != "b.env" {
		t.Fatalf("unexpected env files %v", opts.envFiles)
	}
	if !opts.migrateOnly {
		t.Fatal("expected migrate-only to be set")
	}

	if _, err := parseFlags([]string{"--unknown"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestRun_MigrateOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.db")
	cfg := testConfig(config.StorageSQLite, path)

	if err := run(context.Background(), cfg, options{migrateOnly: true}, discardLogger()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestServe_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, time.Second, discardLogger()) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
