// Package auth contains handlers for the auth endpoints
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/jwt"
	"github.com/matt-dz/foodgram/internal/role"
	"github.com/matt-dz/foodgram/internal/validation"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
} //	@name	LoginRequest

type LoginResponse struct {
	AuthToken string `json:"auth_token"`
} //	@name	LoginResponse

// HandleLogin godoc
//
//	@Summary	Obtain an access token.
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Login Request"
//	@Success	200		{object}	LoginResponse
//	@Failure	400		{object}	apiError.Error	"Invalid credentials"
//	@Router		/api/auth/token/login [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	var request LoginRequest
	env.Logger.DebugContext(ctx, "reading request body")
	if err := mJson.DecodeRequest(r, &request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeDecodeError(w, err, requestID)
		return
	}
	if fields := validation.ValidateStruct(&request); fields != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request body", slog.Any("error", fields))
		_ = apiError.EncodeValidationError(w, fields, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "retrieving user information")
	user, err := env.Database.GetUserByEmail(ctx, request.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "user with email does not exist", slog.String("email", request.Email))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to retrieve user information", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "comparing passwords")
	match, err := argon2id.Compare(request.Password, user.PasswordHash)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to compare passwords", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		env.Logger.ErrorContext(ctx, "given password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "generating access token")
	accessToken, err := token.CreateAccessToken(jwt.JWTParams{
		Role:   role.DBToRoleName(user.Role),
		UserID: strconv.FormatInt(user.ID, 10),
	}, env.Config)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, LoginResponse{AuthToken: accessToken}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleLogout godoc
//
//	@Summary		Log out.
//	@Description	Tokens are stateless; clients discard theirs.
//	@Tags			Auth
//	@Success		204
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Security		TokenAuth
//	@Router			/api/auth/token/logout [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env.EnvFromCtx(ctx).Logger.DebugContext(ctx, "logging out")
	w.WriteHeader(http.StatusNoContent)
}
