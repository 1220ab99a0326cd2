// Package apitest provides helpers for exercising handlers in tests.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/role"
)

const (
	Secret    = "test-secret-32-bytes-long-123456"
	RequestID = "01HZTESTREQUEST"
	Origin    = "http://foodgram.test"
)

// NewEnv returns an Env backed by querier with a signing secret configured.
func NewEnv(querier database.Querier) *env.Env {
	e := env.New(nil, database.NoTx{Querier: querier})
	secret := config.AppSecretValue(Secret)
	e.Config.AppSecret.Value = &secret
	e.Config.HostOrigin = Origin
	return e
}

// Request describes a request to a single handler.
type Request struct {
	Method string
	Target string
	Body   string
	// UserID authenticates the request when non-zero.
	UserID int64
	Role   role.Role
	Params map[string]string
}

// Build turns req into an *http.Request carrying e and the authenticated user.
func (req Request) Build(e *env.Env) *http.Request {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	r := httptest.NewRequest(method, req.Target, strings.NewReader(req.Body))
	r.Header.Set("Content-Type", "application/json")

	ctx := env.WithCtx(r.Context(), e)
	ctx = requestid.InjectRequestID(ctx, RequestID)
	if req.UserID != 0 {
		userRole := req.Role
		if userRole == 0 {
			userRole = role.RoleUser
		}
		ctx = token.UserIDWithCtx(ctx, req.UserID)
		ctx = token.RoleWithCtx(ctx, userRole)
	}
	if len(req.Params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range req.Params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

// Serve runs handler against req and returns the recorded response.
func Serve(handler http.HandlerFunc, e *env.Env, req Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, req.Build(e))
	return w
}

// Decode unmarshals the response body into dst.
func Decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// DecodeError unmarshals an error response body.
func DecodeError(t *testing.T, w *httptest.ResponseRecorder) apiError.Error {
	t.Helper()
	var body apiError.Error
	Decode(t, w, &body)
	return body
}

// ExpectError fails the test unless w carries status and code.
func ExpectError(t *testing.T, w *httptest.ResponseRecorder, status int, code apiError.ErrorCode) apiError.Error {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	body := DecodeError(t, w)
	if body.Code != code {
		t.Errorf("expected code %s, got %s", code, body.Code)
	}
	if body.ErrorID != RequestID {
		t.Errorf("expected error id %q, got %q", RequestID, body.ErrorID)
	}
	return body
}
