// Package sqlite implements the persistence repositories on SQLite through
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Timestamps are stored as fixed-width UTC text so that ORDER BY sorts them
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Storage implements persistence.ConfigurationRepository and
// persistence.TranslationRepository.
type Storage struct {
	pool   *ConnectionPool
	mapper ErrorMapper
	retry  RetryConfig
	logger *slog.Logger
}

var (
	_ persistence.ConfigurationRepository = (*Storage)(nil)
	_ persistence.TranslationRepository   = (*Storage)(nil)
)

// Open connects to the database described by config. Call Migrate before use.
func Open(ctx context.Context, config migration.SQLiteConfig, logger *slog.Logger) (*Storage, error) {
	pool, err := NewConnectionPool(ctx, config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{pool: pool, retry: DefaultRetryConfig(), logger: logger}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Ping checks that the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	runner := migration.NewRunner(s.pool.DB(), migrationFiles, "migrations", s.logger)
	if _, err := runner.Run(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// --- ConfigurationRepository implementation ---

// CreateConfiguration inserts a new record. A duplicate ID yields persistence.ErrConflict.
func (s *Storage) CreateConfiguration(ctx context.Context, record persistence.ConfigurationRecord) error {
	if record.ID == "" {
		return persistence.ErrConstraintViolation
	}
	payload, err := json.Marshal(record.Configuration)
	if err != nil {
		return fmt.Errorf("sqlite: encode configuration %s: %w", record.ID, err)
	}

	const query = `
		INSERT INTO configurations (id, name, configuration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	return withRetry(ctx, s.retry, s.mapper, func() error {
		_, err := s.pool.DB().ExecContext(ctx, query,
			record.ID,
			record.Name,
			string(payload),
			formatTime(record.CreatedAt),
			formatTime(record.UpdatedAt),
		)
		return err
	})
}

// UpdateConfiguration replaces the name, configuration and UpdatedAt of an
// existing record. CreatedAt is never modified.
func (s *Storage) UpdateConfiguration(ctx context.Context, record persistence.ConfigurationRecord) error {
	payload, err := json.Marshal(record.Configuration)
	if err != nil {
		return fmt.Errorf("sqlite: encode configuration %s: %w", record.ID, err)
	}

	const query = `
		UPDATE configurations
		SET name = ?, configuration = ?, updated_at = ?
		WHERE id = ?
	`
	return withRetry(ctx, s.retry, s.mapper, func() error {
		result, err := s.pool.DB().ExecContext(ctx, query,
			record.Name,
			string(payload),
			formatTime(record.UpdatedAt),
			record.ID,
		)
		if err != nil {
			return err
		}
		return requireAffected(result)
	})
}

// GetConfiguration retrieves a record by ID.
func (s *Storage) GetConfiguration(ctx context.Context, id string) (persistence.ConfigurationRecord, error) {
	const query = `
		SELECT id, name, configuration, created_at, updated_at
		FROM configurations
		WHERE id = ?
	`
	record, err := scanConfiguration(s.pool.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		return persistence.ConfigurationRecord{}, s.mapper.MapError(err)
	}
	return record, nil
}

// ListConfigurations returns all records ordered by CreatedAt, then ID.
func (s *Storage) ListConfigurations(ctx context.Context) ([]persistence.ConfigurationRecord, error) {
	const query = `
		SELECT id, name, configuration, created_at, updated_at
		FROM configurations
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.pool.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	defer rows.Close()

	records := make([]persistence.ConfigurationRecord, 0)
	for rows.Next() {
		record, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapper.MapError(err)
	}
	return records, nil
}

// DeleteConfiguration removes a record by ID.
func (s *Storage) DeleteConfiguration(ctx context.Context, id string) error {
	const query = `DELETE FROM configurations WHERE id = ?`
	return withRetry(ctx, s.retry, s.mapper, func() error {
		result, err := s.pool.DB().ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		return requireAffected(result)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfiguration(row rowScanner) (persistence.ConfigurationRecord, error) {
	var (
		record               persistence.ConfigurationRecord
		payload              string
		createdAt, updatedAt string
	)
	if err := row.Scan(&record.ID, &record.Name, &payload, &createdAt, &updatedAt); err != nil {
		return persistence.ConfigurationRecord{}, err
	}
	if err := json.Unmarshal([]byte(payload), &record.Configuration); err != nil {
		return persistence.ConfigurationRecord{}, fmt.Errorf("sqlite: decode configuration %s: %w", record.ID, err)
	}

	var err error
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.ConfigurationRecord{}, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.ConfigurationRecord{}, err
	}
	return record, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return t, nil
}
