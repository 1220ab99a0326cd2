// Package params parses path and query parameters.
package params

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrInvalidID   = errors.New("id must be a positive integer")
	ErrInvalidBool = errors.New("expected 1, 0, true or false")
	ErrInvalidInt  = errors.New("expected a non-negative integer")
)

// ID parses the named path parameter as a positive id.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Bool parses the named query parameter. An absent parameter yields an invalid pgtype.Bool.
func Bool(r *http.Request, name string) (pgtype.Bool, error) {
	switch raw := r.URL.Query().Get(name); raw {
	case "":
		return pgtype.Bool{}, nil
	case "1", "true", "True":
		return pgtype.Bool{Bool: true, Valid: true}, nil
	case "0", "false", "False":
		return pgtype.Bool{Bool: false, Valid: true}, nil
	default:
		return pgtype.Bool{}, fmt.Errorf("%s: %w", name, ErrInvalidBool)
	}
}

// Int8 parses the named query parameter as a positive id.
// An absent parameter yields an invalid pgtype.Int8.
func Int8(r *http.Request, name string) (pgtype.Int8, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return pgtype.Int8{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return pgtype.Int8{}, fmt.Errorf("%s: %w", name, ErrInvalidID)
	}
	return pgtype.Int8{Int64: n, Valid: true}, nil
}

// Int4 parses the named query parameter as a non-negative integer.
// An absent parameter yields an invalid pgtype.Int4.
func Int4(r *http.Request, name string) (pgtype.Int4, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return pgtype.Int4{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return pgtype.Int4{}, fmt.Errorf("%s: %w", name, ErrInvalidInt)
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}, nil
}
