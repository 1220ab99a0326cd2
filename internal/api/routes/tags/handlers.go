// Package tags contains handlers for the tag resource.
package tags

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/params"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/validation"
)

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor6"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
} //	@name	CreateTagRequest

var uniqueConstraintFields = map[string]string{
	"tags_unique_name":  "name",
	"tags_unique_color": "color",
	"tags_unique_slug":  "slug",
}

// HandleListTags godoc
//
//	@Summary	List tags.
//	@Tags		Tags
//	@Produce	json
//	@Success	200	{array}	recipe.Tag
//	@Router		/api/tags [GET]
func HandleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	env.Logger.DebugContext(ctx, "listing tags")
	rows, err := env.Database.ListTags(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	tags := make([]recipe.Tag, len(rows))
	for i, row := range rows {
		tags[i] = recipe.TagFromDB(row)
	}
	if err := mJson.WriteJSON(w, http.StatusOK, tags); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetTag godoc
//
//	@Summary	Get a tag.
//	@Tags		Tags
//	@Produce	json
//	@Param		id	path		int	true	"Tag ID"
//	@Success	200	{object}	recipe.Tag
//	@Failure	404	{object}	apiError.Error	"Tag not found"
//	@Router		/api/tags/{id} [GET]
func HandleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	tagID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	}

	tag, err := env.Database.GetTag(ctx, tagID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, recipe.TagFromDB(tag)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleCreateTag godoc
//
//	@Summary	Create a tag.
//	@Tags		Tags
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateTagRequest	true	"Create Tag Request"
//	@Success	201		{object}	recipe.Tag
//	@Failure	400		{object}	apiError.Error	"Validation error"
//	@Failure	401		{object}	apiError.Error	"Not authenticated"
//	@Failure	403		{object}	apiError.Error	"Admin only"
//	@Security	TokenAuth
//	@Router		/api/tags [POST]
func HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	var request CreateTagRequest
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

	env.Logger.DebugContext(ctx, "creating tag")
	tag, err := env.Database.CreateTag(ctx, database.CreateTagParams{
		Name:  strings.TrimSpace(request.Name),
		Color: strings.ToUpper(request.Color),
		Slug:  request.Slug,
	})
	if constraint, ok := database.UniqueViolation(err); ok {
		field, known := uniqueConstraintFields[constraint]
		if !known {
			field = "non_field_errors"
		}
		env.Logger.ErrorContext(ctx, "tag already exists", slog.String("constraint", constraint))
		_ = apiError.EncodeValidationError(w,
			validation.FieldErrors{field: {"a tag with this " + field + " already exists"}}, requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusCreated, recipe.TagFromDB(tag)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
