// Package render holds the JSON request and response helpers shared by the
// HTTP handlers.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Decode reads a JSON request body into req and validates it.
func Decode(w http.ResponseWriter, r *http.Request, req any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := api.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid field %q: failed %q check", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// encodeFailure is written when a response body cannot be encoded.
var encodeFailure = []byte(`{"error":"failed to encode response"}` + "\n")

// JSON writes v with the given status. The body is encoded before the header
// goes out, so an unencodable value becomes a 500 instead of an empty 2xx.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(encodeFailure)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("failed to write response")
	}
}

// Error writes an error response.
func Error(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := api.ErrorResponse{Error: err.Error()}
	if status == http.StatusUnprocessableEntity {
		computable := false
		resp.Computable = &computable
	}
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	JSON(w, r, status, resp)
}

// CalculatorError maps a calculator error to its HTTP status and writes it.
func CalculatorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, formula.ErrNotComputable):
		Error(w, r, http.StatusUnprocessableEntity, err)
	case errors.Is(err, formula.ErrInvalidInput):
		Error(w, r, http.StatusBadRequest, err)
	default:
		Error(w, r, http.StatusInternalServerError, err)
	}
}
