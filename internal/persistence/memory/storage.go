// Package memory provides a process-local implementation of the persistence
// repositories. It backs tests and deployments that run without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/recurrence-preview/internal/persistence"
)

type translationKey struct {
	language string
	key      string
}

// Storage keeps records in maps guarded by a single lock.
type Storage struct {
	mu             sync.RWMutex
	configurations map[string]persistence.ConfigurationRecord
	translations   map[translationKey]persistence.Translation
}

var (
	_ persistence.ConfigurationRepository = (*Storage)(nil)
	_ persistence.TranslationRepository   = (*Storage)(nil)
)

// New returns an empty Storage.
func New() *Storage {
	return &Storage{
		configurations: make(map[string]persistence.ConfigurationRecord),
		translations:   make(map[translationKey]persistence.Translation),
	}
}

// Close is a no-op.
func (s *Storage) Close() error {
	return nil
}

// Ping always succeeds.
func (s *Storage) Ping(context.Context) error {
	return nil
}

// --- ConfigurationRepository implementation ---

// CreateConfiguration stores a new record.
func (s *Storage) CreateConfiguration(ctx context.Context, record persistence.ConfigurationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: configuration id is required", persistence.ErrConstraintViolation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configurations[record.ID]; ok {
		return fmt.Errorf("%w: configuration %s already exists", persistence.ErrConflict, record.ID)
	}
	s.configurations[record.ID] = cloneRecord(record)
	return nil
}

// UpdateConfiguration replaces the name, configuration and UpdatedAt of an
// existing record. CreatedAt is preserved.
func (s *Storage) UpdateConfiguration(ctx context.Context, record persistence.ConfigurationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.configurations[record.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	updated := cloneRecord(record)
	updated.CreatedAt = existing.CreatedAt
	s.configurations[record.ID] = updated
	return nil
}

// GetConfiguration retrieves a record by ID.
func (s *Storage) GetConfiguration(ctx context.Context, id string) (persistence.ConfigurationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.configurations[id]
	if !ok {
		return persistence.ConfigurationRecord{}, persistence.ErrNotFound
	}
	return cloneRecord(record), nil
}

// ListConfigurations returns all records ordered by CreatedAt, then ID.
func (s *Storage) ListConfigurations(ctx context.Context) ([]persistence.ConfigurationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]persistence.ConfigurationRecord, 0, len(s.configurations))
	for _, record := range s.configurations {
		records = append(records, cloneRecord(record))
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// DeleteConfiguration removes a record by ID.
func (s *Storage) DeleteConfiguration(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configurations[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.configurations, id)
	return nil
}

// --- TranslationRepository implementation ---

// ListTranslations returns the overrides ordered by language code and key name.
func (s *Storage) ListTranslations(ctx context.Context) ([]persistence.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]translationKey, 0, len(s.translations))
	for k := range s.translations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].language == keys[j].language {
			return keys[i].key < keys[j].key
		}
		return keys[i].language < keys[j].language
	})

	translations := make([]persistence.Translation, 0, len(keys))
	for _, k := range keys {
		translations = append(translations, s.translations[k])
	}
	return translations, nil
}

// UpsertTranslation inserts or replaces the override of (Language, Key).
func (s *Storage) UpsertTranslation(ctx context.Context, translation persistence.Translation) error {
	if !translation.Language.Valid() || !translation.Key.Valid() {
		return fmt.Errorf("%w: unknown language or key", persistence.ErrConstraintViolation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := translationKey{language: translation.Language.String(), key: translation.Key.String()}
	s.translations[k] = translation
	return nil
}

func cloneRecord(record persistence.ConfigurationRecord) persistence.ConfigurationRecord {
	record.Configuration = record.Configuration.Clone()
	return record
}
