package persistence

import (
	"time"

	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

// ConfigurationRecord is a named recurrence configuration kept for later previews.
type ConfigurationRecord struct {
	ID            string
	Name          string
	Configuration recurrence.Configuration
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Translation overrides the static catalog text of one key in one language.
type Translation struct {
	Language  localization.Language
	Key       localization.Key
	Text      string
	UpdatedAt time.Time
}
