package persistence

import (
	"context"

	"github.com/example/recurrence-preview/internal/localization"
)

// ConfigurationRepository exposes CRUD operations for stored configurations.
type ConfigurationRepository interface {
	CreateConfiguration(ctx context.Context, record ConfigurationRecord) error
	UpdateConfiguration(ctx context.Context, record ConfigurationRecord) error
	GetConfiguration(ctx context.Context, id string) (ConfigurationRecord, error)
	// ListConfigurations returns records ordered by CreatedAt, then ID.
	ListConfigurations(ctx context.Context) ([]ConfigurationRecord, error)
	DeleteConfiguration(ctx context.Context, id string) error
}

// TranslationRepository stores catalog overrides.
type TranslationRepository interface {
	ListTranslations(ctx context.Context) ([]Translation, error)
	UpsertTranslation(ctx context.Context, translation Translation) error
}

// TranslationOverrides folds stored translations into catalog overrides.
func TranslationOverrides(translations []Translation) localization.Overrides {
	overrides := make(localization.Overrides)
	for _, tr := range translations {
		overrides.Set(tr.Language, tr.Key, tr.Text)
	}
	return overrides
}
