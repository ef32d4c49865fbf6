package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

var (
	errBadRequestBody         = errors.New("request body is not valid JSON")
	errInvalidConfigurationID = errors.New("configuration id is invalid")
	errInvalidReference       = errors.New("reference must be an RFC 3339 timestamp")
)

type responder struct {
	logger     *slog.Logger
	translator localization.Translator
	language   localization.Language
}

func newResponder(logger *slog.Logger, translator localization.Translator, language localization.Language) responder {
	if logger == nil {
		logger = slog.Default()
	}
	if translator == nil {
		translator = localization.Default()
	}
	if !language.Valid() {
		language = localization.EnglishGB
	}
	return responder{logger: logger, translator: translator, language: language}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).WarnContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps service errors onto status codes. Schedule errors
// are rendered in lang, or in the responder language when lang is invalid.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error, lang localization.Language) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}
	if !lang.Valid() {
		lang = r.language
	}

	var sErr *recurrence.ScheduleError
	if errors.As(err, &sErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: string(sErr.Kind),
			Message:   sErr.Message(r.translator, lang),
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: statusMessage(http.StatusNotFound)})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: statusMessage(http.StatusConflict)})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: statusMessage(http.StatusUnprocessableEntity),
				Errors:  vErr.FieldErrors,
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: statusMessage(http.StatusInternalServerError)})
	}
}

// handleRequestValidation answers a request DTO that failed struct validation.
func (r responder) handleRequestValidation(ctx context.Context, w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		r.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldPath(fe)] = fieldMessage(fe)
	}
	r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
		Message: statusMessage(http.StatusUnprocessableEntity),
		Errors:  details,
	})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request is malformed."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusConflict:
		return "The request conflicts with the current state of the resource."
	case http.StatusUnprocessableEntity:
		return "The request contains invalid fields."
	default:
		return "An internal server error occurred."
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
