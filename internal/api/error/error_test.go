package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeError(t *testing.T) {
	tests := []struct {
		name       string
		code       ErrorCode
		wantStatus int
	}{
		{name: "not found", code: RecipeNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", code: RecipeNotOwned, wantStatus: http.StatusForbidden},
		{name: "unauthenticated", code: NotAuthenticated, wantStatus: http.StatusUnauthorized},
		{name: "duplicate favorite", code: AlreadyFavorited, wantStatus: http.StatusBadRequest},
		{name: "self subscription", code: SelfSubscription, wantStatus: http.StatusBadRequest},
		{name: "internal", code: InternalServerError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := EncodeError(w, tt.code, "message", "req-1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var body Error
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, body.Code)
			}
			if body.ErrorID != "req-1" {
				t.Errorf("expected error_id %q, got %q", "req-1", body.ErrorID)
			}
		})
	}
}

func TestEncodeValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	fields := map[string][]string{"cooking_time": {"cooking_time must be at least 1"}}
	if err := EncodeValidationError(w, fields, "req-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var body Error
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Fields["cooking_time"]) != 1 {
		t.Errorf("expected one cooking_time message, got %v", body.Fields)
	}
}

func TestEncodeDecodeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{
			name:       "body too large",
			err:        fmt.Errorf("decoding json: %w", &http.MaxBytesError{Limit: 1024}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   RequestTooLarge,
		},
		{
			name:       "malformed body",
			err:        errors.New("unexpected EOF"),
			wantStatus: http.StatusBadRequest,
			wantCode:   BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := EncodeDecodeError(w, tt.err, "req-1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body Error
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
			}
		})
	}
}
