package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/blog-platform-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with the given status code.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteMessage writes the {success, message} envelope used by every mutating
// route.
func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.WriteJSON(w, status, BaseResponse{Success: true, Message: message})
}

// WriteError translates an error into its HTTP response. Known ApiErr values
// map to their status; anything else is logged with full detail and surfaces
// as a generic 500 so no internals leak to the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	response := map[string]any{
		"success": false,
		"message": apiErr.Error(),
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	r.WriteJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
