package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell-labs/blog-platform-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data as JSON with the given status code. The
// Content-Type header is set before the status line goes out; headers set
// afterwards would be silently dropped.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, statusCode int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	// Build response based on error details
	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Add details if present
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	// For expected errors, the status code comes from apiErr
	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// WriteValidationErrors maps an ozzo-validation error to a 400 response with
// per-field detail.
func (r Responder) WriteValidationErrors(w http.ResponseWriter, err error) {
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		r.WriteError(w, errs.BadRequest(err.Error()))
		return
	}

	fields := make(map[string]string, len(fieldErrors))
	for field, fieldErr := range fieldErrors {
		fields[field] = fieldErr.Error()
	}

	r.WriteJSONStatus(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation error",
		"status": "validation_error",
		"fields": fields,
	})
}

// wrapDatabaseError wraps a database error with context information. Errors
// the repositories already classified pass through untouched.
func wrapDatabaseError(operation, entity string, cause error) error {
	var apiErr *errs.ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}
	return errs.NewDatabaseError(operation, entity, cause)
}
