// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/api/params"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/role"
	"github.com/matt-dz/foodgram/internal/validation"
)

const (
	authorParam           = "author"
	tagsParam             = "tags"
	isFavoritedParam      = "is_favorited"
	isInShoppingCartParam = "is_in_shopping_cart"
)

// HandleListRecipes godoc
//
//	@Summary		List recipes.
//	@Description	Lists recipes newest first. The favorite and shopping cart filters are ignored for anonymous users.
//	@Tags			Recipes
//	@Produce		json
//	@Param			page				query		int		false	"Page number"
//	@Param			limit				query		int		false	"Page size"
//	@Param			author				query		int		false	"Author ID"
//	@Param			tags				query		[]string	false	"Tag slugs"	collectionFormat(multi)
//	@Param			is_favorited		query		int		false	"1 or 0"
//	@Param			is_in_shopping_cart	query		int		false	"1 or 0"
//	@Success		200					{object}	ListRecipesResponse
//	@Failure		400					{object}	apiError.Error	"Invalid filter"
//	@Router			/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	viewerID := token.ViewerFromCtx(ctx)

	page, err := pagination.FromRequest(r, env.Config.Pagination)
	if err != nil {
		env.Logger.ErrorContext(ctx, "invalid pagination", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	fields := validation.FieldErrors{}
	authorID, err := params.Int8(r, authorParam)
	if err != nil {
		fields.Add(authorParam, err.Error())
	}
	isFavorited, err := params.Bool(r, isFavoritedParam)
	if err != nil {
		fields.Add(isFavoritedParam, err.Error())
	}
	isInShoppingCart, err := params.Bool(r, isInShoppingCartParam)
	if err != nil {
		fields.Add(isInShoppingCartParam, err.Error())
	}
	if len(fields) > 0 {
		env.Logger.ErrorContext(ctx, "invalid recipe filters", slog.Any("error", fields))
		_ = apiError.EncodeValidationError(w, fields, requestID)
		return
	}
	if viewerID == 0 {
		isFavorited = pgtype.Bool{}
		isInShoppingCart = pgtype.Bool{}
	}
	tagSlugs := r.URL.Query()[tagsParam]

	env.Logger.DebugContext(ctx, "counting recipes")
	count, err := env.Database.CountRecipes(ctx, database.CountRecipesParams{
		ViewerID:         viewerID,
		AuthorID:         authorID,
		TagSlugs:         tagSlugs,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInShoppingCart,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing recipes")
	rows, err := env.Database.ListRecipes(ctx, database.ListRecipesParams{
		ViewerID:         viewerID,
		AuthorID:         authorID,
		TagSlugs:         tagSlugs,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInShoppingCart,
		Limit:            int64(page.Limit),
		Offset:           page.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipes, err := recipe.Load(ctx, env.Database, rows)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to load recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := pagination.NewResponse(r, env.Config.HostOrigin, page, count, recipes)
	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	200	{object}	recipe.Recipe
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{id} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	recipeID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "getting recipe", slog.Int64("recipe-id", recipeID))
	resp, err := recipe.Get(ctx, env.Database, recipeID, token.ViewerFromCtx(ctx))
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateRecipeRequest	true	"Create Recipe Request"
//	@Success	201		{object}	recipe.Recipe
//	@Failure	400		{object}	apiError.Error	"Validation error"
//	@Failure	401		{object}	apiError.Error	"Not authenticated"
//	@Security	TokenAuth
//	@Router		/api/recipes [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	var request CreateRecipeRequest
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
	in := request.input()
	fields, err := check(ctx, env.Database, env.Config.Recipes, in)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if fields != nil {
		env.Logger.ErrorContext(ctx, "failed to validate recipe", slog.Any("error", fields))
		_ = apiError.EncodeValidationError(w, fields, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "creating recipe")
	var resp recipe.Recipe
	err = env.Database.InTx(ctx, func(q database.Querier) error {
		created, err := q.CreateRecipe(ctx, database.CreateRecipeParams{
			AuthorID:    userID,
			Name:        recipe.Capitalize(request.Name),
			Image:       request.Image,
			Text:        request.Text,
			CookingTime: request.CookingTime,
		})
		if err != nil {
			return err
		}
		if err := q.AddRecipeTags(ctx, database.AddRecipeTagsParams{
			RecipeID: created.ID,
			TagIds:   in.Tags,
		}); err != nil {
			return err
		}
		if err := q.AddRecipeIngredients(ctx, database.AddRecipeIngredientsParams{
			RecipeID:      created.ID,
			IngredientIds: in.ingredientIDs(),
			Amounts:       in.amounts(),
		}); err != nil {
			return err
		}
		resp, err = recipe.Get(ctx, q, created.ID, userID)
		return err
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	metrics.RecordRecipeCreated()

	if err := mJson.WriteJSON(w, http.StatusCreated, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleUpdateRecipe godoc
//
//	@Summary		Update a recipe.
//	@Description	Updates the provided fields. Provided tags and ingredients replace the existing sets.
//	@Tags			Recipes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Recipe ID"
//	@Param			request	body		UpdateRecipeRequest	true	"Update Recipe Request"
//	@Success		200		{object}	recipe.Recipe
//	@Failure		400		{object}	apiError.Error	"Validation error"
//	@Failure		401		{object}	apiError.Error	"Not authenticated"
//	@Failure		403		{object}	apiError.Error	"Not the author"
//	@Failure		404		{object}	apiError.Error	"Recipe not found"
//	@Security		TokenAuth
//	@Router			/api/recipes/{id} [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	recipeID, userID, ok := authorize(w, r)
	if !ok {
		return
	}

	var request UpdateRecipeRequest
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
	in := request.input()
	fields, err := check(ctx, env.Database, env.Config.Recipes, in)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if fields != nil {
		env.Logger.ErrorContext(ctx, "failed to validate recipe", slog.Any("error", fields))
		_ = apiError.EncodeValidationError(w, fields, requestID)
		return
	}

	update := database.UpdateRecipeParams{ID: recipeID}
	if request.Name != nil {
		update.Name = pgtype.Text{String: recipe.Capitalize(*request.Name), Valid: true}
	}
	if request.Image != nil {
		update.Image = pgtype.Text{String: *request.Image, Valid: true}
	}
	if request.Text != nil {
		update.Text = pgtype.Text{String: *request.Text, Valid: true}
	}
	if request.CookingTime != nil {
		update.CookingTime = pgtype.Int4{Int32: *request.CookingTime, Valid: true}
	}

	env.Logger.DebugContext(ctx, "updating recipe", slog.Int64("recipe-id", recipeID))
	var resp recipe.Recipe
	err = env.Database.InTx(ctx, func(q database.Querier) error {
		if err := q.UpdateRecipe(ctx, update); err != nil {
			return err
		}
		if in.Tags != nil {
			if err := q.DeleteRecipeTags(ctx, recipeID); err != nil {
				return err
			}
			if err := q.AddRecipeTags(ctx, database.AddRecipeTagsParams{
				RecipeID: recipeID,
				TagIds:   in.Tags,
			}); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := q.DeleteRecipeIngredients(ctx, recipeID); err != nil {
				return err
			}
			if err := q.AddRecipeIngredients(ctx, database.AddRecipeIngredientsParams{
				RecipeID:      recipeID,
				IngredientIds: in.ingredientIDs(),
				Amounts:       in.amounts(),
			}); err != nil {
				return err
			}
		}
		var err error
		resp, err = recipe.Get(ctx, q, recipeID, userID)
		return err
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	403	{object}	apiError.Error	"Not the author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	recipeID, _, ok := authorize(w, r)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "deleting recipe", slog.Int64("recipe-id", recipeID))
	if err := env.Database.DeleteRecipe(ctx, recipeID); err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorize resolves the recipe in the path and checks that the
// authenticated user is its author or an admin. On failure the error
// response has already been written.
func authorize(w http.ResponseWriter, r *http.Request) (recipeID, userID int64, ok bool) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return 0, 0, false
	}
	recipeID, err = params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return 0, 0, false
	}

	authorID, err := env.Database.GetRecipeAuthor(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return 0, 0, false
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return 0, 0, false
	}

	if authorID != userID && !token.RoleFromCtx(ctx).AtLeast(role.RoleAdmin) {
		env.Logger.ErrorContext(ctx, "user does not own recipe",
			slog.Int64("recipe-id", recipeID), slog.Int64("author-id", authorID))
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "you may only modify your own recipes", requestID)
		return 0, 0, false
	}

	return recipeID, userID, true
}
