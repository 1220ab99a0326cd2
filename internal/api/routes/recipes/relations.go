package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/params"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/token"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	mJson "github.com/matt-dz/foodgram/internal/json"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/shoppinglist"
)

// relation is a per-user set of recipes, such as favorites.
type relation struct {
	name string

	add    func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error)
	remove func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error)

	present    apiError.ErrorCode
	presentMsg string
	absent     apiError.ErrorCode
	absentMsg  string
}

var favorites = relation{
	name: "favorites",
	add: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
		return q.AddFavorite(ctx, database.AddFavoriteParams{UserID: userID, RecipeID: recipeID})
	},
	remove: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
		return q.DeleteFavorite(ctx, database.DeleteFavoriteParams{UserID: userID, RecipeID: recipeID})
	},
	present:    apiError.AlreadyFavorited,
	presentMsg: "recipe is already in favorites",
	absent:     apiError.NotFavorited,
	absentMsg:  "recipe is not in favorites",
}

var shoppingCart = relation{
	name: "shopping cart",
	add: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
		return q.AddToShoppingCart(ctx, database.AddToShoppingCartParams{UserID: userID, RecipeID: recipeID})
	},
	remove: func(ctx context.Context, q database.Querier, userID, recipeID int64) (int64, error) {
		return q.DeleteFromShoppingCart(ctx, database.DeleteFromShoppingCartParams{UserID: userID, RecipeID: recipeID})
	},
	present:    apiError.AlreadyInShoppingCart,
	presentMsg: "recipe is already in the shopping cart",
	absent:     apiError.NotInShoppingCart,
	absentMsg:  "recipe is not in the shopping cart",
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to favorites.
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	recipe.ShortRecipe
//	@Failure	400	{object}	apiError.Error	"Already in favorites"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/favorite [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, favorites)
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from favorites.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not in favorites"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/favorite [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, favorites)
}

// HandleAddToShoppingCart godoc
//
//	@Summary	Add a recipe to the shopping cart.
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	recipe.ShortRecipe
//	@Failure	400	{object}	apiError.Error	"Already in the shopping cart"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/shopping_cart [POST]
func HandleAddToShoppingCart(w http.ResponseWriter, r *http.Request) {
	addRelation(w, r, shoppingCart)
}

// HandleRemoveFromShoppingCart godoc
//
//	@Summary	Remove a recipe from the shopping cart.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not in the shopping cart"
//	@Failure	401	{object}	apiError.Error	"Not authenticated"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/shopping_cart [DELETE]
func HandleRemoveFromShoppingCart(w http.ResponseWriter, r *http.Request) {
	removeRelation(w, r, shoppingCart)
}

// shortRecipe loads the recipe in the path. On failure the error response
// has already been written.
func shortRecipe(w http.ResponseWriter, r *http.Request) (recipe.ShortRecipe, bool) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	recipeID, err := params.ID(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return recipe.ShortRecipe{}, false
	}
	row, err := env.Database.GetShortRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return recipe.ShortRecipe{}, false
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return recipe.ShortRecipe{}, false
	}
	return recipe.ShortFromDB(row), true
}

func addRelation(w http.ResponseWriter, r *http.Request, rel relation) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	short, ok := shortRecipe(w, r)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "adding recipe to "+rel.name, slog.Int64("recipe-id", short.ID))
	added, err := rel.add(ctx, env.Database, userID, short.ID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to add recipe to "+rel.name, slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if added == 0 {
		_ = apiError.EncodeError(w, rel.present, rel.presentMsg, requestID)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusCreated, short); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func removeRelation(w http.ResponseWriter, r *http.Request, rel relation) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	short, ok := shortRecipe(w, r)
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "removing recipe from "+rel.name, slog.Int64("recipe-id", short.ID))
	removed, err := rel.remove(ctx, env.Database, userID, short.ID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to remove recipe from "+rel.name, slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if removed == 0 {
		_ = apiError.EncodeError(w, rel.absent, rel.absentMsg, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary		Download the shopping list.
//	@Description	Sums ingredient amounts over every recipe in the shopping cart.
//	@Tags			Recipes
//	@Produce		plain
//	@Success		200	{string}	string	"shopping_list.txt"
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Security		TokenAuth
//	@Router			/api/recipes/download_shopping_cart [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "getting shopping list")
	rows, err := env.Database.GetShoppingList(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get shopping list", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	items := make([]shoppinglist.Item, len(rows))
	for i, row := range rows {
		items[i] = shoppinglist.Item{
			Name:            row.Name,
			Total:           row.Total,
			MeasurementUnit: row.MeasurementUnit,
		}
	}

	w.Header().Set("Content-Type", shoppinglist.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+shoppinglist.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(shoppinglist.String(items))); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
	metrics.RecordShoppingListDownloaded()
}
