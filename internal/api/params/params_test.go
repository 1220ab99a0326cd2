package params

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "12", want: 12},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "me", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			got, err := ID(r, "id")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("expected ErrInvalidID, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		query   string
		want    pgtype.Bool
		wantErr bool
	}{
		{query: "", want: pgtype.Bool{}},
		{query: "?is_favorited=1", want: pgtype.Bool{Bool: true, Valid: true}},
		{query: "?is_favorited=0", want: pgtype.Bool{Valid: true}},
		{query: "?is_favorited=true", want: pgtype.Bool{Bool: true, Valid: true}},
		{query: "?is_favorited=yes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Bool(httptest.NewRequest(http.MethodGet, "/api/recipes"+tt.query, nil), "is_favorited")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBool) {
					t.Errorf("expected ErrInvalidBool, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %+v, got %+v (%v)", tt.want, got, err)
			}
		})
	}
}

func TestInts(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?author=4&recipes_limit=0&bad=x", nil)

	author, err := Int8(r, "author")
	if err != nil || author != (pgtype.Int8{Int64: 4, Valid: true}) {
		t.Errorf("unexpected author %+v (%v)", author, err)
	}
	missing, err := Int8(r, "missing")
	if err != nil || missing.Valid {
		t.Errorf("expected invalid Int8, got %+v (%v)", missing, err)
	}
	if _, err := Int8(r, "bad"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	limit, err := Int4(r, "recipes_limit")
	if err != nil || limit != (pgtype.Int4{Int32: 0, Valid: true}) {
		t.Errorf("unexpected limit %+v (%v)", limit, err)
	}
	if _, err := Int4(r, "bad"); !errors.Is(err, ErrInvalidInt) {
		t.Errorf("expected ErrInvalidInt, got %v", err)
	}
}
