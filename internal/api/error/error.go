// Package error defines the JSON error body returned by the API.
package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is the body of every non-2xx response.
type Error struct {
	Status  int                 `json:"status"`
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	ErrorID string              `json:"error_id"`
	Fields  map[string][]string `json:"fields,omitempty"`
} //	@name	Error

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func encode(w http.ResponseWriter, body *Error) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("encoding error body: %w", err)
	}
	return nil
}

// EncodeError writes an error response for code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	return encode(w, &Error{
		Status:  code.StatusCode(),
		Code:    code,
		Message: message,
		ErrorID: errorID,
	})
}

// EncodeDecodeError writes the response for a request body that could not
// be decoded. Bodies cut off by http.MaxBytesReader get a 413.
func EncodeDecodeError(w http.ResponseWriter, err error, errorID string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return EncodeError(w, RequestTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), errorID)
	}
	return EncodeError(w, BadRequest, "invalid request body", errorID)
}

// EncodeValidationError writes a 400 response listing the messages per field.
func EncodeValidationError(w http.ResponseWriter, fields map[string][]string, errorID string) error {
	return encode(w, &Error{
		Status:  ValidationError.StatusCode(),
		Code:    ValidationError,
		Message: "invalid request",
		ErrorID: errorID,
		Fields:  fields,
	})
}

// EncodeInternalError writes a generic 500 response.
func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
