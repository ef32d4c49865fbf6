package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	Previews       *PreviewHandler
	Configurations *ConfigurationHandler
	Health         *HealthHandler
	Middleware     []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range cfg.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Check)
	}

	if cfg.Previews != nil {
		r.Post("/previews", cfg.Previews.Preview)
	}

	if cfg.Configurations != nil {
		r.Route("/configurations", func(r chi.Router) {
			r.Get("/", cfg.Configurations.List)
			r.Post("/", cfg.Configurations.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.Configurations.Get)
				r.Put("/", cfg.Configurations.Update)
				r.Delete("/", cfg.Configurations.Delete)
				if cfg.Previews != nil {
					r.Get("/preview", cfg.Previews.PreviewStored)
					r.Get("/calendar.ics", cfg.Previews.Calendar)
				}
			})
		})
	}

	return r
}
