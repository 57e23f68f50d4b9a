package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/guardianeye/guardianeye/internal/server/validation"
)

const maxRequestBodyBytes = 1 << 20

var errEmptyBody = errors.New("empty request body")

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// serverError logs err and answers 500. The error text is only exposed in
// development.
func (a *API) serverError(ctx context.Context, w http.ResponseWriter, err error) {
	a.log.Error(ctx, "request failed", "error", err)

	body := messageResponse{Message: msgServerError}
	if a.development {
		body.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// it writes a 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if err := validation.ValidateStruct(dst); err != nil {
		var ve *validation.Error
		if errors.As(err, &ve) {
			writeMessage(w, http.StatusBadRequest, ve.Message)
			return false
		}
		writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}
