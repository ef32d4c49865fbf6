package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/calendar"
	"github.com/example/recurrence-preview/internal/config"
	httptransport "github.com/example/recurrence-preview/internal/http"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/persistence/memory"
	"github.com/example/recurrence-preview/internal/persistence/sqlite"
	"github.com/example/recurrence-preview/internal/persistence/sqlite/migration"
	"github.com/example/recurrence-preview/internal/recurrence"
)

type options struct {
	envFiles    []string
	migrateOnly bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("previewd", pflag.ContinueOnError)
	flagSet.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file to load before reading PREVIEW_* variables (repeatable, default .env)")
	flagSet.BoolVar(&opts.migrateOnly, "migrate-only", false, "apply database migrations and exit")
	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadFiles(opts.envFiles...)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("preview service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}
	defer func() {
		if cerr := srv.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if opts.migrateOnly {
		logger.Info("migrations applied", "storage", cfg.Storage)
		return nil
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return serve(ctx, httpServer, cfg.ShutdownTimeout, logger)
}

// serve runs server until ctx is cancelled, then drains it within timeout.
func serve(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("preview API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("preview API stopped")
		return nil
	})

	return g.Wait()
}

// store is the persistence surface the binary needs from either backend.
type store interface {
	persistence.ConfigurationRepository
	persistence.TranslationRepository
	Ping(ctx context.Context) error
	Close() error
}

type server struct {
	Handler http.Handler
	Service *application.PreviewService
	store   store
}

func (s *server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

// newServer wires storage, translations, the engine and the HTTP router.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*server, error) {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	overrides, err := loadOverrides(ctx, cfg.TranslationFile, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	catalog := localization.NewCatalog(overrides)
	logger.Info("translations loaded", "overrides", overrides.Len())

	service := application.NewPreviewServiceWithLogger(
		recurrence.NewEngine(catalog),
		newConfigurationRepositoryAdapter(st),
		uuid.NewString,
		time.Now,
		logger,
	).WithPreviewCache(cfg.CacheTTL, cfg.CacheEntries).WithOccurrenceLimit(cfg.MaxOccurrences)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Previews: httptransport.NewPreviewHandler(httptransport.PreviewHandlerConfig{
			Service:         service,
			Translator:      catalog,
			DefaultLanguage: cfg.DefaultLanguage,
			Calendar:        calendar.ExportOptions{Domain: cfg.CalendarDomain, Duration: cfg.EventDuration},
			Logger:          logger,
		}),
		Configurations: httptransport.NewConfigurationHandler(service, catalog, cfg.DefaultLanguage, logger),
		Health:         httptransport.NewHealthHandler(st, logger),
		Middleware: []func(http.Handler) http.Handler{
			middleware.RequestID,
			httptransport.RequestLogger(logger),
			middleware.Recoverer,
		},
	})

	return &server{Handler: router, Service: service, store: st}, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; configurations are lost on restart")
		return memory.New(), nil
	}

	storage, err := sqlite.Open(ctx, migration.DefaultSQLiteConfig(cfg.SQLiteDSN), logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := storage.Migrate(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return storage, nil
}

// loadOverrides layers database translations over the YAML file; database
// rows win.
func loadOverrides(ctx context.Context, path string, translations persistence.TranslationRepository) (localization.Overrides, error) {
	overrides, err := localization.LoadOverridesFile(path)
	if err != nil {
		return nil, err
	}
	stored, err := translations.ListTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored translations: %w", err)
	}
	overrides.Merge(persistence.TranslationOverrides(stored))
	return overrides, nil
}

type configurationRepositoryAdapter struct {
	repo persistence.ConfigurationRepository
}

func newConfigurationRepositoryAdapter(repo persistence.ConfigurationRepository) *configurationRepositoryAdapter {
	return &configurationRepositoryAdapter{repo: repo}
}

func (a *configurationRepositoryAdapter) CreateConfiguration(ctx context.Context, stored application.StoredConfiguration) (application.StoredConfiguration, error) {
	if err := a.repo.CreateConfiguration(ctx, toConfigurationRecord(stored)); err != nil {
		return application.StoredConfiguration{}, err
	}
	return a.GetConfiguration(ctx, stored.ID)
}

func (a *configurationRepositoryAdapter) GetConfiguration(ctx context.Context, id string) (application.StoredConfiguration, error) {
	record, err := a.repo.GetConfiguration(ctx, id)
	if err != nil {
		return application.StoredConfiguration{}, err
	}
	return toStoredConfiguration(record), nil
}

func (a *configurationRepositoryAdapter) UpdateConfiguration(ctx context.Context, stored application.StoredConfiguration) (application.StoredConfiguration, error) {
	if err := a.repo.UpdateConfiguration(ctx, toConfigurationRecord(stored)); err != nil {
		return application.StoredConfiguration{}, err
	}
	return a.GetConfiguration(ctx, stored.ID)
}

func (a *configurationRepositoryAdapter) DeleteConfiguration(ctx context.Context, id string) error {
	return a.repo.DeleteConfiguration(ctx, id)
}

func (a *configurationRepositoryAdapter) ListConfigurations(ctx context.Context) ([]application.StoredConfiguration, error) {
	records, err := a.repo.ListConfigurations(ctx)
	if err != nil {
		return nil, err
	}
	stored := make([]application.StoredConfiguration, 0, len(records))
	for _, record := range records {
		stored = append(stored, toStoredConfiguration(record))
	}
	return stored, nil
}

func toConfigurationRecord(stored application.StoredConfiguration) persistence.ConfigurationRecord {
	return persistence.ConfigurationRecord{
		ID:            stored.ID,
		Name:          stored.Name,
		Configuration: stored.Configuration,
		CreatedAt:     stored.CreatedAt,
		UpdatedAt:     stored.UpdatedAt,
	}
}

func toStoredConfiguration(record persistence.ConfigurationRecord) application.StoredConfiguration {
	return application.StoredConfiguration{
		ID:            record.ID,
		Name:          record.Name,
		Configuration: record.Configuration,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
