package sqlite

import (
	"context"
	"fmt"

	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/persistence"
)

// --- TranslationRepository implementation ---

// ListTranslations returns every stored override ordered by language and key.
// Rows naming a language or key this build does not know are skipped.
func (s *Storage) ListTranslations(ctx context.Context) ([]persistence.Translation, error) {
	const query = `
		SELECT language, message_key, text, updated_at
		FROM translations
		ORDER BY language ASC, message_key ASC
	`
	rows, err := s.pool.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, s.mapper.MapError(err)
	}
	defer rows.Close()

	translations := make([]persistence.Translation, 0)
	for rows.Next() {
		var langCode, keyName, text, updatedAt string
		if err := rows.Scan(&langCode, &keyName, &text, &updatedAt); err != nil {
			return nil, s.mapper.MapError(err)
		}

		lang, langErr := localization.ParseLanguage(langCode)
		key, keyErr := localization.ParseKey(keyName)
		if langErr != nil || keyErr != nil {
			s.logger.WarnContext(ctx, "skipping unknown translation row", "language", langCode, "key", keyName)
			continue
		}

		stamp, err := parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		translations = append(translations, persistence.Translation{Language: lang, Key: key, Text: text, UpdatedAt: stamp})
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapper.MapError(err)
	}
	return translations, nil
}

// UpsertTranslation inserts or replaces the override of (Language, Key).
func (s *Storage) UpsertTranslation(ctx context.Context, translation persistence.Translation) error {
	if !translation.Language.Valid() || !translation.Key.Valid() {
		return fmt.Errorf("%w: unknown language or key", persistence.ErrConstraintViolation)
	}

	const query = `
		INSERT INTO translations (language, message_key, text, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (language, message_key) DO UPDATE SET
			text = excluded.text,
			updated_at = excluded.updated_at
	`
	return withRetry(ctx, s.retry, s.mapper, func() error {
		_, err := s.pool.DB().ExecContext(ctx, query,
			translation.Language.String(),
			translation.Key.String(),
			translation.Text,
			formatTime(translation.UpdatedAt),
		)
		return err
	})
}
