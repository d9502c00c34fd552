package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes the error body. Errors
// without a code are reported as INTERNAL_ERROR.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeEmptyInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeOutOfRange,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeTextTooLong:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnknownTransform, errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
