// Package users contains handlers for the user resource.
package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/api/params"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/password"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/validation"
)

const recipesLimitParam = "recipes_limit"

// hashParams is overridden in tests to keep hashing cheap.
var hashParams = argon2id.DefaultParams

var uniqueConstraintFields = map[string][2]string{
	"users_unique_email":    {"email", "a user with this email already exists"},
	"users_unique_username": {"username", "a user with this username already exists"},
}

// HandleListUsers godoc
//
//	@Summary	List users.
//	@Tags		Users
//	@Produce	json
//	@Param		page	query		int	false	"Page number"
//	@Param		limit	query		int	false	"Page size"
//	@Success	200		{object}	ListUsersResponse
//	@Failure	400		{object}	apiError.Error	"Invalid pagination"
//	@Router		/api/users [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	page, err := pagination.FromRequest(r, env.Config.Pagination)
	if err != nil {
		env.Logger.ErrorContext(ctx, "invalid pagination", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	env.Logger.DebugContext(ctx, "counting users")
	count, err := env.Database.CountUsers(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing users")
	rows, err := env.Database.ListUsers(ctx, database.ListUsersParams{
		ViewerID: token.ViewerFromCtx(ctx),
		Limit:    int64(page.Limit),
		Offset:   page.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	users := make([]recipe.Author, len(rows))
	for i, row := range rows {
		users[i] = recipe.AuthorFromProfile(row)
	}
	resp := pagination.NewResponse(r, env.Config.HostOrigin, page, count, users)
	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleRegister godoc
//
//	@Summary	Register a user.
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RegisterRequest	true	"Register Request"
//	@Success	201		{object}	RegisterResponse
//	@Failure	400		{object}	apiError.Error	"Validation error"
//	@Router		/api/users [POST]
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	var request RegisterRequest
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

	env.Logger.DebugContext(ctx, "validating password")
	err := password.ValidateForUser(request.Password,
		request.Username, request.Email, request.FirstName, request.LastName)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeValidationError(w, validation.FieldErrors{"password": {err.Error()}}, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "hashing password")
	hash, err := argon2id.EncodeHash(request.Password, hashParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "creating user")
	user, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
	})
	if constraint, ok := database.UniqueViolation(err); ok {
		env.Logger.ErrorContext(ctx, "user already exists", slog.String("constraint", constraint))
		field, known := uniqueConstraintFields[constraint]
		if !known {
			field = [2]string{"non_field_errors", "user already exists"}
		}
		_ = apiError.EncodeValidationError(w, validation.FieldErrors{field[0]: {field[1]}}, requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	metrics.RecordUserRegistered()

	resp := RegisterResponse{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if err := mJson.WriteJSON(w, http.StatusCreated, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	recipe.Author
//	@Failure	404	{object}	apiError.Error	"User not found"
//	@Router		/api/users/{id} [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestid.ExtractRequestID(ctx)

	userID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	}

	writeProfile(w, r, userID, token.ViewerFromCtx(ctx))
}

// HandleMe godoc
//
//	@Summary	Get the current user.
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	recipe.Author
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Security	TokenAuth
//	@Router		/api/users/me [GET]
func HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.NotAuthenticated, "authentication credentials were not provided", requestID)
		return
	}

	writeProfile(w, r, userID, userID)
}

func writeProfile(w http.ResponseWriter, r *http.Request, userID, viewerID int64) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	env.Logger.DebugContext(ctx, "getting user profile", slog.Int64("profile-id", userID))
	profile, err := env.Database.GetUserProfile(ctx, database.GetUserProfileParams{
		ID:       userID,
		ViewerID: viewerID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		env.Logger.ErrorContext(ctx, "user not found", slog.Int64("profile-id", userID))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user profile", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, recipe.AuthorFromProfile(profile)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleSetPassword godoc
//
//	@Summary	Change the current user's password.
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	SetPasswordRequest	true	"Set Password Request"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Validation error"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Security	TokenAuth
//	@Router		/api/users/set_password [POST]
func HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	var request SetPasswordRequest
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

	env.Logger.DebugContext(ctx, "getting user")
	user, err := env.Database.GetUserByID(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "comparing passwords")
	match, err := argon2id.Compare(request.CurrentPassword, user.PasswordHash)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to compare passwords", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		env.Logger.ErrorContext(ctx, "current password is incorrect")
		_ = apiError.EncodeValidationError(w,
			validation.FieldErrors{"current_password": {"current password is incorrect"}}, requestID)
		return
	}

	err = password.ValidateForUser(request.NewPassword, user.Username, user.Email, user.FirstName, user.LastName)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeValidationError(w, validation.FieldErrors{"new_password": {err.Error()}}, requestID)
		return
	}

	hash, err := argon2id.EncodeHash(request.NewPassword, hashParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "updating password")
	err = env.Database.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:           userID,
		PasswordHash: hash,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List the authors the current user follows.
//	@Tags		Users
//	@Produce	json
//	@Param		page			query		int	false	"Page number"
//	@Param		limit			query		int	false	"Page size"
//	@Param		recipes_limit	query		int	false	"Recipes shown per author"
//	@Success	200				{object}	ListSubscriptionsResponse
//	@Failure	401				{object}	apiError.Error	"Not authenticated"
//	@Security	TokenAuth
//	@Router		/api/users/subscriptions [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	page, err := pagination.FromRequest(r, env.Config.Pagination)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}
	recipesLimit, err := params.Int4(r, recipesLimitParam)
	if err != nil {
		_ = apiError.EncodeValidationError(w, validation.FieldErrors{recipesLimitParam: {err.Error()}}, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing subscriptions")
	count, err := env.Database.CountSubscriptions(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authors, err := env.Database.ListSubscriptions(ctx, database.ListSubscriptionsParams{
		UserID: userID,
		Limit:  int64(page.Limit),
		Offset: page.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	subscriptions := make([]Subscription, 0, len(authors))
	if len(authors) > 0 {
		authorIDs := make([]int64, len(authors))
		for i, author := range authors {
			authorIDs[i] = author.ID
		}
		rows, err := env.Database.ListAuthorRecipes(ctx, database.ListAuthorRecipesParams{
			AuthorIds: authorIDs,
			Limit:     recipesLimit,
		})
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to list author recipes", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		grouped := recipesByAuthor(rows)
		for _, author := range authors {
			subscriptions = append(subscriptions, newSubscription(author, grouped[author.ID]))
		}
	}

	resp := pagination.NewResponse(r, env.Config.HostOrigin, page, count, subscriptions)
	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleSubscribe godoc
//
//	@Summary	Subscribe to an author.
//	@Tags		Users
//	@Produce	json
//	@Param		id				path		int	true	"Author ID"
//	@Param		recipes_limit	query		int	false	"Recipes shown"
//	@Success	201				{object}	Subscription
//	@Failure	400				{object}	apiError.Error	"Already subscribed or self subscription"
//	@Failure	401				{object}	apiError.Error	"Not authenticated"
//	@Failure	404				{object}	apiError.Error	"Author not found"
//	@Security	TokenAuth
//	@Router		/api/users/{id}/subscribe [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	}
	if authorID == userID {
		env.Logger.ErrorContext(ctx, "user attempted to subscribe to themselves")
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "you cannot subscribe to yourself", requestID)
		return
	}
	recipesLimit, err := params.Int4(r, recipesLimitParam)
	if err != nil {
		_ = apiError.EncodeValidationError(w, validation.FieldErrors{recipesLimitParam: {err.Error()}}, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "getting author", slog.Int64("author-id", authorID))
	if _, err := env.Database.GetUserByID(ctx, authorID); errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "creating subscription")
	created, err := env.Database.CreateSubscription(ctx, database.CreateSubscriptionParams{
		UserID:   userID,
		AuthorID: authorID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if created == 0 {
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed to this author", requestID)
		return
	}

	author, err := env.Database.GetSubscriptionAuthor(ctx, authorID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get subscription author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	rows, err := env.Database.ListAuthorRecipes(ctx, database.ListAuthorRecipesParams{
		AuthorIds: []int64{authorID},
		Limit:     recipesLimit,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list author recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := newSubscription(author, recipesByAuthor(rows)[authorID])
	if err := mJson.WriteJSON(w, http.StatusCreated, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleUnsubscribe godoc
//
//	@Summary	Unsubscribe from an author.
//	@Tags		Users
//	@Param		id	path	int	true	"Author ID"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not subscribed"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	404	{object}	apiError.Error	"Author not found"
//	@Security	TokenAuth
//	@Router		/api/users/{id}/subscribe [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	}

	if _, err := env.Database.GetUserByID(ctx, authorID); errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "deleting subscription")
	deleted, err := env.Database.DeleteSubscription(ctx, database.DeleteSubscriptionParams{
		UserID:   userID,
		AuthorID: authorID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if deleted == 0 {
		_ = apiError.EncodeError(w, apiError.NotSubscribed, "not subscribed to this author", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
