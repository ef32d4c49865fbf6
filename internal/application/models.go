package application

import (
	"time"

	"github.com/example/recurrence-preview/internal/recurrence"
)

// ConfigurationInput captures caller provided configuration fields.
type ConfigurationInput struct {
	Name          string
	Configuration recurrence.Configuration
}

// StoredConfiguration is a named configuration kept by the service.
type StoredConfiguration struct {
	ID            string
	Name          string
	Configuration recurrence.Configuration
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PreviewParams wraps an inline configuration to preview. A nil Reference
// means "now" according to the service clock.
type PreviewParams struct {
	Configuration *recurrence.Configuration
	Reference     *time.Time
}

// PreviewStoredParams identifies a stored configuration to preview.
type PreviewStoredParams struct {
	ConfigurationID string
	Reference       *time.Time
}

// Preview is the computed result of a configuration.
type Preview struct {
	ConfigurationID   string
	ConfigurationName string
	Reference         time.Time
	Description       string
	// RRule is the RFC 5545 form of the configuration; empty when it has none.
	RRule   string
	Outputs []recurrence.Output
	// Truncated is set when Outputs stopped at the service's occurrence limit.
	Truncated bool
}

// CreateConfigurationParams wraps the data required to store a configuration.
type CreateConfigurationParams struct {
	Input ConfigurationInput
}

// UpdateConfigurationParams wraps the data required to replace a configuration.
type UpdateConfigurationParams struct {
	ConfigurationID string
	Input           ConfigurationInput
}
