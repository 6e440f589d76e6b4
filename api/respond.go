package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-cms/backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// envelope is the uniform wrapper around every response body.
type envelope struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Data       any    `json:"data"`
}

// WriteEnvelope writes the response wrapper with the given HTTP status,
// human-readable message and payload. data may be nil.
func (r Responder) WriteEnvelope(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	body := envelope{
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  time.Now().Format(time.RFC3339),
		Data:       data,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps domain errors onto the envelope. Validation errors carry
// their field list in data; anything that is not an ApiErr collapses to a
// generic 500 so persistence internals never leak to the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var validation errs.ValidationErrors
	if errors.As(err, &validation) {
		r.WriteEnvelope(w, http.StatusBadRequest, "validation failed", validation)
		return
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.WriteEnvelope(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Str("cause", apiErr.GetFullError()).Msg(apiErr.Error())
	}
	r.WriteEnvelope(w, apiErr.StatusCode, apiErr.Error(), nil)
}

// wrapRepoError passes domain errors through untouched and classifies the
// rest as database failures.
func wrapRepoError(operation, entity string, cause error) error {
	var validation errs.ValidationErrors
	if errors.As(cause, &validation) {
		return validation
	}
	var apiErr *errs.ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}
	return errs.NewDatabaseError(operation, entity, cause)
}
