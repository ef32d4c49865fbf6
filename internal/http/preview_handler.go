package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/calendar"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

type previewService interface {
	Preview(ctx context.Context, params application.PreviewParams) (application.Preview, error)
	PreviewStored(ctx context.Context, params application.PreviewStoredParams) (application.Preview, error)
}

// PreviewHandlerConfig wires a PreviewHandler.
type PreviewHandlerConfig struct {
	Service         previewService
	Translator      localization.Translator
	DefaultLanguage localization.Language
	// Calendar configures the iCalendar export; Now defaults to time.Now.
	Calendar calendar.ExportOptions
	Now      func() time.Time
	Logger   *slog.Logger
}

type PreviewHandler struct {
	service   previewService
	responder responder
	calendar  calendar.ExportOptions
	now       func() time.Time
	logger    *slog.Logger
}

func NewPreviewHandler(cfg PreviewHandlerConfig) *PreviewHandler {
	base := defaultLogger(cfg.Logger)
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &PreviewHandler{
		service:   cfg.Service,
		responder: newResponder(base, cfg.Translator, cfg.DefaultLanguage),
		calendar:  cfg.Calendar,
		now:       now,
		logger:    base,
	}
}

func (h *PreviewHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PreviewHandler", operation, attrs...)
}

// previewRequest carries an inline configuration. A missing configuration is
// passed through so the engine reports MissingConfiguration.
type previewRequest struct {
	Configuration *recurrence.Configuration `json:"configuration"`
	Reference     *time.Time                `json:"reference,omitempty"`
}

type occurrenceDTO struct {
	OutputDate  time.Time `json:"output_date"`
	Description string    `json:"description"`
}

type previewResponse struct {
	ConfigurationID string          `json:"configuration_id,omitempty"`
	Reference       time.Time       `json:"reference"`
	Description     string          `json:"description"`
	RRule           string          `json:"rrule,omitempty"`
	Occurrences     []occurrenceDTO `json:"occurrences"`
	Truncated       bool            `json:"truncated"`
}

func toPreviewResponse(preview application.Preview) previewResponse {
	occurrences := make([]occurrenceDTO, 0, len(preview.Outputs))
	for _, output := range preview.Outputs {
		occurrences = append(occurrences, occurrenceDTO{OutputDate: output.OutputDate, Description: output.Description})
	}
	return previewResponse{
		ConfigurationID: preview.ConfigurationID,
		Reference:       preview.Reference,
		Description:     preview.Description,
		RRule:           preview.RRule,
		Occurrences:     occurrences,
		Truncated:       preview.Truncated,
	}
}

// Preview handles POST /previews.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req previewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r.Context(), "Preview", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode preview request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Preview")
	preview, err := h.service.Preview(r.Context(), application.PreviewParams{
		Configuration: req.Configuration,
		Reference:     req.Reference,
	})
	if err != nil {
		logger.WarnContext(r.Context(), "preview failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, requestLanguage(req.Configuration))
		return
	}

	logger.DebugContext(r.Context(), "preview computed", "occurrences", len(preview.Outputs))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPreviewResponse(preview))
}

// PreviewStored handles GET /configurations/{id}/preview.
func (h *PreviewHandler) PreviewStored(w http.ResponseWriter, r *http.Request) {
	preview, ok := h.previewStored(w, r, "PreviewStored")
	if !ok {
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPreviewResponse(preview))
}

// Calendar handles GET /configurations/{id}/calendar.ics.
func (h *PreviewHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	preview, ok := h.previewStored(w, r, "Calendar")
	if !ok {
		return
	}

	opts := h.calendar
	opts.Now = h.now()
	opts.Name = preview.ConfigurationName
	body := calendar.Export(preview.ConfigurationID, preview.Outputs, opts)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+preview.ConfigurationID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log(r.Context(), "Calendar").ErrorContext(r.Context(), "failed to write calendar", "error", err)
	}
}

func (h *PreviewHandler) previewStored(w http.ResponseWriter, r *http.Request, operation string) (application.Preview, bool) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return application.Preview{}, false
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").WarnContext(r.Context(), "missing configuration id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidConfigurationID)
		return application.Preview{}, false
	}

	reference, err := parseReference(r)
	if err != nil {
		h.log(r.Context(), operation, "configuration_id", id, "error_kind", "bad_request").WarnContext(r.Context(), "invalid reference", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return application.Preview{}, false
	}

	logger := h.log(r.Context(), operation, "configuration_id", id)
	preview, err := h.service.PreviewStored(r.Context(), application.PreviewStoredParams{
		ConfigurationID: id,
		Reference:       reference,
	})
	if err != nil {
		logger.WarnContext(r.Context(), "stored preview failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, localization.Language(-1))
		return application.Preview{}, false
	}

	logger.DebugContext(r.Context(), "stored preview computed", "occurrences", len(preview.Outputs))
	return preview, true
}

// requestLanguage picks the language errors about cfg are reported in.
func requestLanguage(cfg *recurrence.Configuration) localization.Language {
	if cfg == nil {
		return localization.Language(-1)
	}
	return cfg.Language
}
