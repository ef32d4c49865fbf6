package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

type configurationService interface {
	CreateConfiguration(ctx context.Context, params application.CreateConfigurationParams) (application.StoredConfiguration, error)
	UpdateConfiguration(ctx context.Context, params application.UpdateConfigurationParams) (application.StoredConfiguration, error)
	GetConfiguration(ctx context.Context, id string) (application.StoredConfiguration, error)
	ListConfigurations(ctx context.Context) ([]application.StoredConfiguration, error)
	DeleteConfiguration(ctx context.Context, id string) error
}

type ConfigurationHandler struct {
	service   configurationService
	responder responder
	logger    *slog.Logger
}

func NewConfigurationHandler(service configurationService, translator localization.Translator, defaultLanguage localization.Language, logger *slog.Logger) *ConfigurationHandler {
	base := defaultLogger(logger)
	return &ConfigurationHandler{service: service, responder: newResponder(base, translator, defaultLanguage), logger: base}
}

func (h *ConfigurationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ConfigurationHandler", operation, attrs...)
}

type configurationRequest struct {
	Name          string                    `json:"name" validate:"required,max=200"`
	Configuration *recurrence.Configuration `json:"configuration" validate:"required"`
}

func (r configurationRequest) toInput() application.ConfigurationInput {
	input := application.ConfigurationInput{Name: r.Name}
	if r.Configuration != nil {
		input.Configuration = *r.Configuration
	}
	return input
}

type configurationDTO struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Configuration recurrence.Configuration `json:"configuration"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type configurationResponse struct {
	Configuration configurationDTO `json:"configuration"`
}

type configurationListResponse struct {
	Configurations []configurationDTO `json:"configurations"`
}

func toConfigurationDTO(stored application.StoredConfiguration) configurationDTO {
	return configurationDTO{
		ID:            stored.ID,
		Name:          stored.Name,
		Configuration: stored.Configuration,
		CreatedAt:     stored.CreatedAt,
		UpdatedAt:     stored.UpdatedAt,
	}
}

// decodeConfigurationRequest writes the error response itself and reports
// whether the handler may continue.
func (h *ConfigurationHandler) decodeConfigurationRequest(w http.ResponseWriter, r *http.Request, operation string) (configurationRequest, bool) {
	var req configurationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode configuration request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return req, false
	}
	if err := requestValidator().Struct(req); err != nil {
		h.log(r.Context(), operation, "error_kind", "validation").WarnContext(r.Context(), "configuration request failed validation", "error", err)
		h.responder.handleRequestValidation(r.Context(), w, err)
		return req, false
	}
	return req, true
}

func (h *ConfigurationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	req, ok := h.decodeConfigurationRequest(w, r, "Create")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Create")
	stored, err := h.service.CreateConfiguration(r.Context(), application.CreateConfigurationParams{Input: req.toInput()})
	if err != nil {
		logger.ErrorContext(r.Context(), "configuration creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, requestLanguage(req.Configuration))
		return
	}

	logger.With("configuration_id", stored.ID).InfoContext(r.Context(), "configuration created")
	w.Header().Set("Location", "/configurations/"+stored.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, configurationResponse{Configuration: toConfigurationDTO(stored)})
}

func (h *ConfigurationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := h.configurationID(w, r, "Update")
	if !ok {
		return
	}
	req, ok := h.decodeConfigurationRequest(w, r, "Update")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Update", "configuration_id", id)
	stored, err := h.service.UpdateConfiguration(r.Context(), application.UpdateConfigurationParams{
		ConfigurationID: id,
		Input:           req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "configuration update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, requestLanguage(req.Configuration))
		return
	}

	logger.InfoContext(r.Context(), "configuration updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, configurationResponse{Configuration: toConfigurationDTO(stored)})
}

func (h *ConfigurationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := h.configurationID(w, r, "Get")
	if !ok {
		return
	}

	stored, err := h.service.GetConfiguration(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "configuration_id", id).WarnContext(r.Context(), "configuration lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, localization.Language(-1))
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, configurationResponse{Configuration: toConfigurationDTO(stored)})
}

func (h *ConfigurationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stored, err := h.service.ListConfigurations(r.Context())
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "configuration list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, localization.Language(-1))
		return
	}

	items := make([]configurationDTO, 0, len(stored))
	for _, s := range stored {
		items = append(items, toConfigurationDTO(s))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, configurationListResponse{Configurations: items})
}

func (h *ConfigurationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := h.configurationID(w, r, "Delete")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Delete", "configuration_id", id)
	if err := h.service.DeleteConfiguration(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "configuration delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err, localization.Language(-1))
		return
	}

	logger.InfoContext(r.Context(), "configuration deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ConfigurationHandler) configurationID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").WarnContext(r.Context(), "missing configuration id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidConfigurationID)
		return "", false
	}
	return id, true
}
