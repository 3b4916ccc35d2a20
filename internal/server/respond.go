package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lox/pokerequity/charts"
	"github.com/lox/pokerequity/poker"
)

// maxBodyBytes bounds request bodies; the largest legitimate payload is a
// range string of all 169 notations.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id,omitempty"`
}

// errInvalidRequest marks malformed bodies and bound violations that are not
// a poker error kind.
var errInvalidRequest = errors.New("invalid request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidRequest, fmt.Sprintf(format, args...))
}

// statusFor maps an error to its HTTP status and error kind.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, charts.ErrChartNotFound):
		return http.StatusNotFound, "chart_not_found"
	case errors.Is(err, poker.ErrUnreachableRange):
		return http.StatusUnprocessableEntity, "unreachable_range"
	case errors.Is(err, poker.ErrInvalidCardNotation):
		return http.StatusBadRequest, "invalid_card_notation"
	case errors.Is(err, poker.ErrInvalidRangeNotation):
		return http.StatusBadRequest, "invalid_range_notation"
	case errors.Is(err, poker.ErrDuplicateCard):
		return http.StatusBadRequest, "duplicate_card"
	case errors.Is(err, poker.ErrInsufficientCards):
		return http.StatusBadRequest, "insufficient_cards"
	case errors.Is(err, poker.ErrInvalidInput), errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, "invalid_input"
	default:
		return http.StatusInternalServerError, ""
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload any) bool {
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct != "application/json" {
		writeJSONError(w, r, http.StatusUnsupportedMediaType, "", nil)
		return false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_json", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("could not write JSON response")
	}
}

// writeError reports err with the status its kind maps to.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	writeJSONError(w, r, status, kind, err)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, statusCode int, kind string, err error) {
	msg := http.StatusText(statusCode)
	if statusCode < 500 && err != nil {
		msg = err.Error()
	}
	if statusCode >= 500 {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", statusCode).Msg("request failed")
	}

	writeJSON(w, r, statusCode, errorResponse{
		Message:    msg,
		Kind:       kind,
		StatusCode: statusCode,
		RequestID:  w.Header().Get(requestIDHeader),
	})
}
