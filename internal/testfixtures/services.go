package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Translator  localization.Translator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory frozen at ReferenceTime that
// issues "cfg-<n>" identifiers and renders text through the static catalog.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("cfg")
	}
	if factory.Translator == nil {
		factory.Translator = localization.Default()
	}
	return factory
}

func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithTranslator renders descriptions and error messages through tr.
func WithTranslator(tr localization.Translator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Translator = tr
	}
}

// PreviewServiceDeps captures dependencies for constructing a preview service.
// Zero fields fall back to the factory defaults; a zero CacheTTL keeps the
// service's own cache limits.
type PreviewServiceDeps struct {
	Configurations  application.ConfigurationRepository
	IDGenerator     func() string
	Now             func() time.Time
	Logger          *slog.Logger
	CacheTTL        time.Duration
	CacheMaxEntries int
	// MaxOccurrences overrides the per-preview cap when positive.
	MaxOccurrences int
}

// NewEngine returns an engine bound to the factory translator.
func (f *ServiceFactory) NewEngine() *recurrence.Engine {
	return recurrence.NewEngine(f.Translator)
}

// NewPreviewService builds a preview service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewPreviewService(deps PreviewServiceDeps) *application.PreviewService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	svc := application.NewPreviewServiceWithLogger(
		f.NewEngine(),
		deps.Configurations,
		idGen,
		now,
		deps.Logger,
	)
	if deps.CacheTTL > 0 {
		svc = svc.WithPreviewCache(deps.CacheTTL, deps.CacheMaxEntries)
	}
	if deps.MaxOccurrences > 0 {
		svc = svc.WithOccurrenceLimit(deps.MaxOccurrences)
	}
	return svc
}
