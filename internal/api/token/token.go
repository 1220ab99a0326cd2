// Package token contains utilities for http tokens.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/jwt"
	"github.com/matt-dz/foodgram/internal/role"
)

type (
	userIDKeyType struct{}
	roleKeyType   struct{}
)

var (
	userIDKey userIDKeyType
	roleKey   roleKeyType
)

var (
	ErrNoUserID        = errors.New("no user id in context")
	ErrMalformedHeader = errors.New("malformed authorization header")
)

// Schemes accepted in the Authorization header.
var schemes = []string{"Token", "Bearer"}

func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx returns the authenticated user id or ErrNoUserID for
// anonymous requests.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v, nil
	}
	return 0, ErrNoUserID
}

// ViewerFromCtx returns the authenticated user id, or 0 for anonymous requests.
func ViewerFromCtx(ctx context.Context) int64 {
	userID, _ := UserIDFromCtx(ctx)
	return userID
}

func RoleWithCtx(ctx context.Context, r role.Role) context.Context {
	return context.WithValue(ctx, roleKey, r)
}

func RoleFromCtx(ctx context.Context) role.Role {
	if v, ok := ctx.Value(roleKey).(role.Role); ok {
		return v
	}
	return role.RoleUnknown
}

// FromHeader extracts the raw token from an Authorization header value.
// An empty header yields an empty token and no error.
func FromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", nil
	}

	scheme, raw, ok := strings.Cut(header, " ")
	if !ok {
		return "", ErrMalformedHeader
	}
	raw = strings.TrimSpace(raw)
	for _, s := range schemes {
		if strings.EqualFold(scheme, s) && raw != "" {
			return raw, nil
		}
	}
	return "", ErrMalformedHeader
}

// FromRequest extracts the raw token from the request's Authorization header.
func FromRequest(r *http.Request) (string, error) {
	return FromHeader(r.Header.Get("Authorization"))
}

func secretOf(conf config.Config) ([]byte, string, error) {
	if conf.AppSecret.Value == nil || *conf.AppSecret.Value == "" {
		return nil, "", errors.New("app secret not configured")
	}
	version := conf.AppSecret.Version
	if version == "" {
		version = jwt.DefaultKID
	}
	return []byte(*conf.AppSecret.Value), version, nil
}

// CreateAccessToken signs a token for the given user.
func CreateAccessToken(params jwt.JWTParams, conf config.Config) (string, error) {
	secret, version, err := secretOf(conf)
	if err != nil {
		return "", err
	}
	token, err := jwt.GenerateJWT(params, secret, version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

// ParseAccessToken validates raw and returns the user id and role it carries.
func ParseAccessToken(raw string, conf config.Config) (int64, role.Role, error) {
	secret, version, err := secretOf(conf)
	if err != nil {
		return 0, role.RoleUnknown, err
	}
	accessJwt, err := jwt.ValidateJWT(raw, version, secret)
	if err != nil {
		return 0, role.RoleUnknown, err
	}
	userID, roleClaim, err := jwt.Subject(accessJwt)
	if err != nil {
		return 0, role.RoleUnknown, err
	}
	return userID, role.ToRole(roleClaim), nil
}
