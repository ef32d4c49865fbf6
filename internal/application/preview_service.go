package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/recurrence"
)

const (
	maxNameLength = 200
	// DefaultMaxOccurrences caps a single preview unless WithOccurrenceLimit says otherwise.
	DefaultMaxOccurrences = 5000
)

// ConfigurationRepository captures the persistence operations needed by the service.
type ConfigurationRepository interface {
	CreateConfiguration(ctx context.Context, stored StoredConfiguration) (StoredConfiguration, error)
	GetConfiguration(ctx context.Context, id string) (StoredConfiguration, error)
	UpdateConfiguration(ctx context.Context, stored StoredConfiguration) (StoredConfiguration, error)
	DeleteConfiguration(ctx context.Context, id string) error
	ListConfigurations(ctx context.Context) ([]StoredConfiguration, error)
}

// PreviewService validates configurations, computes their occurrences and
// keeps named configurations for later previews.
type PreviewService struct {
	engine         *recurrence.Engine
	configurations ConfigurationRepository
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
	cache          *previewCache
	maxOccurrences int
}

// NewPreviewService constructs a preview service with the provided dependencies.
func NewPreviewService(engine *recurrence.Engine, configurations ConfigurationRepository, idGenerator func() string, now func() time.Time) *PreviewService {
	return NewPreviewServiceWithLogger(engine, configurations, idGenerator, now, nil)
}

// NewPreviewServiceWithLogger constructs a preview service with a specified logger.
func NewPreviewServiceWithLogger(engine *recurrence.Engine, configurations ConfigurationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *PreviewService {
	if engine == nil {
		engine = recurrence.NewEngine(nil)
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &PreviewService{
		engine:         engine,
		configurations: configurations,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
		cache:          newPreviewCache(0, 0, now),
		maxOccurrences: DefaultMaxOccurrences,
	}
}

// WithPreviewCache replaces the stored-preview cache limits and returns s.
func (s *PreviewService) WithPreviewCache(ttl time.Duration, maxEntries int) *PreviewService {
	s.cache = newPreviewCache(ttl, maxEntries, s.now)
	return s
}

// WithOccurrenceLimit caps the number of outputs of a single preview and
// returns s. A non-positive limit restores DefaultMaxOccurrences. Cached
// previews computed under a different limit are dropped.
func (s *PreviewService) WithOccurrenceLimit(limit int) *PreviewService {
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}
	if limit != s.maxOccurrences {
		s.cache.Invalidate()
	}
	s.maxOccurrences = limit
	return s
}

func (s *PreviewService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PreviewService", operation, attrs...)
}

// Preview validates an inline configuration and computes its occurrences.
func (s *PreviewService) Preview(ctx context.Context, params PreviewParams) (preview Preview, err error) {
	if s == nil {
		err = fmt.Errorf("PreviewService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Preview")
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to compute preview", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "preview computed", "occurrences", len(preview.Outputs))
	}()

	preview, err = s.compute(params.Configuration, s.reference(params.Reference))
	if err == nil && preview.Truncated {
		logger.WarnContext(ctx, "preview truncated at occurrence limit", "limit", s.maxOccurrences)
	}
	return
}

// PreviewStored loads a stored configuration and computes its occurrences.
func (s *PreviewService) PreviewStored(ctx context.Context, params PreviewStoredParams) (preview Preview, err error) {
	if s == nil {
		err = fmt.Errorf("PreviewService is nil")
		return
	}
	if s.configurations == nil {
		err = fmt.Errorf("configuration repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "PreviewStored", "configuration_id", params.ConfigurationID)
	cached := false
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to compute stored preview", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "stored preview computed", "occurrences", len(preview.Outputs), "cached", cached)
	}()

	var stored StoredConfiguration
	stored, err = s.configurations.GetConfiguration(ctx, params.ConfigurationID)
	if err != nil {
		err = mapConfigurationRepoError(err)
		return
	}

	reference := s.reference(params.Reference)
	key := buildPreviewCacheKey(stored, reference)
	if preview, cached = s.cache.Get(key); cached {
		preview.Reference = reference
		return
	}

	preview, err = s.compute(&stored.Configuration, reference)
	if err != nil {
		return
	}
	if preview.Truncated {
		logger.WarnContext(ctx, "stored preview truncated at occurrence limit", "limit", s.maxOccurrences)
	}
	preview.ConfigurationID = stored.ID
	preview.ConfigurationName = stored.Name
	s.cache.Store(key, preview)
	return
}

// CreateConfiguration validates input and persists a new named configuration.
func (s *PreviewService) CreateConfiguration(ctx context.Context, params CreateConfigurationParams) (stored StoredConfiguration, err error) {
	if s == nil {
		err = fmt.Errorf("PreviewService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateConfiguration")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create configuration", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("configuration_id", stored.ID).InfoContext(ctx, "configuration created")
	}()

	name, err := validateConfigurationInput(params.Input)
	if err != nil {
		return
	}

	stored = StoredConfiguration{
		ID:            s.idGenerator(),
		Name:          name,
		Configuration: params.Input.Configuration.Clone(),
		CreatedAt:     s.now(),
	}
	stored.UpdatedAt = stored.CreatedAt

	if s.configurations == nil {
		return
	}

	var persisted StoredConfiguration
	persisted, err = s.configurations.CreateConfiguration(ctx, stored)
	if err != nil {
		err = mapConfigurationRepoError(err)
		return
	}
	stored = persisted
	return
}

// UpdateConfiguration validates input and replaces an existing configuration.
func (s *PreviewService) UpdateConfiguration(ctx context.Context, params UpdateConfigurationParams) (stored StoredConfiguration, err error) {
	if s == nil {
		err = fmt.Errorf("PreviewService is nil")
		return
	}
	if s.configurations == nil {
		err = fmt.Errorf("configuration repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateConfiguration", "configuration_id", params.ConfigurationID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update configuration", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "configuration updated")
	}()

	var existing StoredConfiguration
	existing, err = s.configurations.GetConfiguration(ctx, params.ConfigurationID)
	if err != nil {
		err = mapConfigurationRepoError(err)
		return
	}

	name, err := validateConfigurationInput(params.Input)
	if err != nil {
		return
	}

	existing.Name = name
	existing.Configuration = params.Input.Configuration.Clone()
	existing.UpdatedAt = s.now()

	stored, err = s.configurations.UpdateConfiguration(ctx, existing)
	if err != nil {
		err = mapConfigurationRepoError(err)
		return
	}
	s.cache.Forget(stored.ID)
	return
}

// GetConfiguration returns a stored configuration by identifier.
func (s *PreviewService) GetConfiguration(ctx context.Context, id string) (StoredConfiguration, error) {
	if s == nil {
		return StoredConfiguration{}, fmt.Errorf("PreviewService is nil")
	}
	if s.configurations == nil {
		return StoredConfiguration{}, fmt.Errorf("configuration repository not configured")
	}

	stored, err := s.configurations.GetConfiguration(ctx, id)
	if err != nil {
		return StoredConfiguration{}, mapConfigurationRepoError(err)
	}
	return stored, nil
}

// ListConfigurations returns every stored configuration, oldest first.
func (s *PreviewService) ListConfigurations(ctx context.Context) ([]StoredConfiguration, error) {
	if s == nil {
		return nil, fmt.Errorf("PreviewService is nil")
	}
	if s.configurations == nil {
		return nil, fmt.Errorf("configuration repository not configured")
	}

	stored, err := s.configurations.ListConfigurations(ctx)
	if err != nil {
		return nil, mapConfigurationRepoError(err)
	}
	return stored, nil
}

// DeleteConfiguration removes a stored configuration.
func (s *PreviewService) DeleteConfiguration(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("PreviewService is nil")
	}
	if s.configurations == nil {
		return fmt.Errorf("configuration repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteConfiguration", "configuration_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete configuration", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "configuration deleted")
	}()

	if err = s.configurations.DeleteConfiguration(ctx, id); err != nil {
		err = mapConfigurationRepoError(err)
		return
	}
	s.cache.Forget(id)
	return nil
}

func (s *PreviewService) reference(ref *time.Time) time.Time {
	if ref != nil {
		return *ref
	}
	return s.now()
}

func (s *PreviewService) compute(cfg *recurrence.Configuration, reference time.Time) (Preview, error) {
	outputs, truncated, err := s.engine.ComputeLimit(cfg, reference, s.maxOccurrences)
	if err != nil {
		return Preview{}, err
	}
	description, err := s.engine.Describe(cfg, reference)
	if err != nil {
		return Preview{}, err
	}

	preview := Preview{Reference: reference, Description: description, Outputs: outputs, Truncated: truncated}
	rule, err := recurrence.ToRRule(cfg)
	switch {
	case err == nil:
		preview.RRule = rule.String()
	case !errors.Is(err, recurrence.ErrNotRepresentable):
		return Preview{}, err
	}
	return preview, nil
}

// validateConfigurationInput returns the normalised name, a *ValidationError
// for malformed fields, or the engine's *recurrence.ScheduleError.
func validateConfigurationInput(input ConfigurationInput) (string, error) {
	vErr := &ValidationError{}
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		vErr.add("name", "name is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		vErr.add("name", fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	if !input.Configuration.Language.Valid() {
		vErr.add("configuration.language", "language is not supported")
	}
	if vErr.HasErrors() {
		return "", vErr
	}

	if err := recurrence.Validate(&input.Configuration); err != nil {
		return "", err
	}
	return name, nil
}

func mapConfigurationRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, ErrAlreadyExists) || errors.Is(err, persistence.ErrConflict) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("id", "configuration identifier is invalid")
		return vErr
	}
	return err
}
