package recipes

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matt-dz/foodgram/internal/api/apitest"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/role"
	"go.uber.org/mock/gomock"
)

const pngImage = "data:image/png;base64,iVBORw0KGgo="

func recipeRow(id, authorID int64) database.RecipeRow {
	return database.RecipeRow{
		ID:             id,
		AuthorID:       authorID,
		Name:           "Pancakes",
		Image:          pngImage,
		Text:           "Mix and fry.",
		CookingTime:    15,
		PubDate:        pgtype.Timestamptz{Time: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), Valid: true},
		AuthorEmail:    "chef@example.com",
		AuthorUsername: "chef",
	}
}

// expectLoad expects the queries recipe.Get issues for id.
func expectLoad(m *database.MockQuerier, id, viewer int64) {
	m.EXPECT().GetRecipe(gomock.Any(), database.GetRecipeParams{ID: id, ViewerID: viewer}).
		Return(recipeRow(id, 1), nil)
	m.EXPECT().GetRecipeTags(gomock.Any(), []int64{id}).Return([]database.GetRecipeTagsRow{
		{RecipeID: id, ID: 1, Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"},
	}, nil)
	m.EXPECT().GetRecipeIngredients(gomock.Any(), []int64{id}).Return([]database.GetRecipeIngredientsRow{
		{RecipeID: id, ID: 1, Name: "flour", MeasurementUnit: "g", Amount: 200},
	}, nil)
}

func TestHandleListRecipes(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		userID     int64
		wantParams database.ListRecipesParams
	}{
		{
			name:       "anonymous ignores personal filters",
			target:     "/api/recipes?is_favorited=1&is_in_shopping_cart=0",
			wantParams: database.ListRecipesParams{Limit: 6},
		},
		{
			name:   "all filters",
			target: "/api/recipes?author=3&tags=breakfast&tags=lunch&is_favorited=1&is_in_shopping_cart=0&page=2&limit=2",
			userID: 7,
			wantParams: database.ListRecipesParams{
				ViewerID:         7,
				AuthorID:         pgtype.Int8{Int64: 3, Valid: true},
				TagSlugs:         []string{"breakfast", "lunch"},
				IsFavorited:      pgtype.Bool{Bool: true, Valid: true},
				IsInShoppingCart: pgtype.Bool{Bool: false, Valid: true},
				Limit:            2,
				Offset:           2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockDB := database.NewMockQuerier(ctrl)

			mockDB.EXPECT().CountRecipes(gomock.Any(), database.CountRecipesParams{
				ViewerID:         tt.wantParams.ViewerID,
				AuthorID:         tt.wantParams.AuthorID,
				TagSlugs:         tt.wantParams.TagSlugs,
				IsFavorited:      tt.wantParams.IsFavorited,
				IsInShoppingCart: tt.wantParams.IsInShoppingCart,
			}).Return(int64(5), nil)
			mockDB.EXPECT().ListRecipes(gomock.Any(), tt.wantParams).
				Return([]database.RecipeRow{recipeRow(10, 3)}, nil)
			mockDB.EXPECT().GetRecipeTags(gomock.Any(), []int64{10}).Return(nil, nil)
			mockDB.EXPECT().GetRecipeIngredients(gomock.Any(), []int64{10}).Return(nil, nil)

			w := apitest.Serve(HandleListRecipes, apitest.NewEnv(mockDB), apitest.Request{
				Target: tt.target,
				UserID: tt.userID,
			})
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			var resp ListRecipesResponse
			apitest.Decode(t, w, &resp)
			if resp.Count != 5 {
				t.Errorf("expected count 5, got %d", resp.Count)
			}
			if len(resp.Results) != 1 || resp.Results[0].ID != 10 {
				t.Fatalf("unexpected results %+v", resp.Results)
			}
			if resp.Results[0].Tags == nil || resp.Results[0].Ingredients == nil {
				t.Errorf("expected empty tag and ingredient lists, got %+v", resp.Results[0])
			}
		})
	}
}

func TestHandleListRecipes_InvalidFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)

	w := apitest.Serve(HandleListRecipes, apitest.NewEnv(mockDB), apitest.Request{
		Target: "/api/recipes?author=abc&is_favorited=maybe",
		UserID: 1,
	})
	body := apitest.ExpectError(t, w, http.StatusBadRequest, apiError.ValidationError)
	for _, field := range []string{"author", "is_favorited"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("expected field error for %q, got %v", field, body.Fields)
		}
	}
}

func TestHandleGetRecipe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)
	e := apitest.NewEnv(mockDB)

	expectLoad(mockDB, 4, 0)
	w := apitest.Serve(HandleGetRecipe, e, apitest.Request{
		Target: "/api/recipes/4",
		Params: map[string]string{"id": "4"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got recipe.Recipe
	apitest.Decode(t, w, &got)
	if got.ID != 4 || len(got.Tags) != 1 || len(got.Ingredients) != 1 || got.Ingredients[0].Amount != 200 {
		t.Errorf("unexpected recipe %+v", got)
	}
	if got.Author.Username != "chef" {
		t.Errorf("expected author chef, got %q", got.Author.Username)
	}

	mockDB.EXPECT().GetRecipe(gomock.Any(), database.GetRecipeParams{ID: 5}).
		Return(database.RecipeRow{}, pgx.ErrNoRows)
	w = apitest.Serve(HandleGetRecipe, e, apitest.Request{
		Target: "/api/recipes/5",
		Params: map[string]string{"id": "5"},
	})
	apitest.ExpectError(t, w, http.StatusNotFound, apiError.RecipeNotFound)
}

func TestHandleCreateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*database.MockQuerier)
		wantStatus int
		wantFields []string
	}{
		{
			name: "created",
			body: `{"ingredients":[{"id":1,"amount":200},{"id":2,"amount":3}],"tags":[1],` +
				`"image":"` + pngImage + `","name":"pancakes","text":"Mix and fry.","cooking_time":15}`,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{1, 2}).Return(int64(2), nil)
				m.EXPECT().CountTagsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)
				m.EXPECT().CreateRecipe(gomock.Any(), database.CreateRecipeParams{
					AuthorID:    1,
					Name:        "Pancakes",
					Image:       pngImage,
					Text:        "Mix and fry.",
					CookingTime: 15,
				}).Return(database.Recipe{ID: 4}, nil)
				m.EXPECT().AddRecipeTags(gomock.Any(), database.AddRecipeTagsParams{
					RecipeID: 4,
					TagIds:   []int64{1},
				}).Return(nil)
				m.EXPECT().AddRecipeIngredients(gomock.Any(), database.AddRecipeIngredientsParams{
					RecipeID:      4,
					IngredientIds: []int64{1, 2},
					Amounts:       []int32{200, 3},
				}).Return(nil)
				expectLoad(m, 4, 1)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "empty ingredients and tags",
			body: `{"ingredients":[],"tags":[],"image":"` + pngImage + `","name":"a","text":"b","cooking_time":5}`,
			setup: func(*database.MockQuerier) {
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients", "tags"},
		},
		{
			name:       "negative ingredient id",
			body:       `{"ingredients":[{"id":-1,"amount":2}],"tags":[1],"image":"` + pngImage + `","name":"a","text":"b","cooking_time":5}`,
			setup:      func(*database.MockQuerier) {},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients[0].id"},
		},
		{
			name: "missing name and text",
			body: `{"ingredients":[{"id":1,"amount":2}],"tags":[1],"image":"` + pngImage + `","cooking_time":5}`,
			setup: func(*database.MockQuerier) {
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"name", "text"},
		},
		{
			name: "blank name and text",
			body: `{"ingredients":[{"id":1,"amount":2}],"tags":[1],` +
				`"image":"` + pngImage + `","name":"   ","text":" \n ","cooking_time":5}`,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)
				m.EXPECT().CountTagsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"name", "text"},
		},
		{
			name: "duplicate ingredients and small amounts",
			body: `{"ingredients":[{"id":1,"amount":0},{"id":1,"amount":2}],"tags":[1],` +
				`"image":"` + pngImage + `","name":"a","text":"b","cooking_time":0}`,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().CountTagsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients", "ingredients[0].amount", "cooking_time"},
		},
		{
			name: "unknown tag and ingredient",
			body: `{"ingredients":[{"id":99,"amount":2}],"tags":[1,99],` +
				`"image":"` + pngImage + `","name":"a","text":"b","cooking_time":5}`,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{99}).Return(int64(0), nil)
				m.EXPECT().CountTagsByIDs(gomock.Any(), []int64{1, 99}).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"ingredients", "tags"},
		},
		{
			name: "duplicate tags and bad image",
			body: `{"ingredients":[{"id":1,"amount":2}],"tags":[1,1],` +
				`"image":"data:text/plain;base64,aGk=","name":"a","text":"b","cooking_time":5}`,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"tags", "image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockDB := database.NewMockQuerier(ctrl)
			tt.setup(mockDB)

			w := apitest.Serve(HandleCreateRecipe, apitest.NewEnv(mockDB), apitest.Request{
				Method: http.MethodPost,
				Target: "/api/recipes",
				Body:   tt.body,
				UserID: 1,
			})
			if tt.wantStatus == http.StatusCreated {
				if w.Code != http.StatusCreated {
					t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
				}
				var got recipe.Recipe
				apitest.Decode(t, w, &got)
				if got.ID != 4 {
					t.Errorf("unexpected recipe %+v", got)
				}
				return
			}
			body := apitest.ExpectError(t, w, tt.wantStatus, apiError.ValidationError)
			for _, field := range tt.wantFields {
				if _, ok := body.Fields[field]; !ok {
					t.Errorf("expected field error for %q, got %v", field, body.Fields)
				}
			}
		})
	}
}

func TestHandleCreateRecipe_RollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)

	mockDB.EXPECT().CountIngredientsByIDs(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	mockDB.EXPECT().CountTagsByIDs(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	mockDB.EXPECT().CreateRecipe(gomock.Any(), gomock.Any()).Return(database.Recipe{ID: 4}, nil)
	mockDB.EXPECT().AddRecipeTags(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	w := apitest.Serve(HandleCreateRecipe, apitest.NewEnv(mockDB), apitest.Request{
		Method: http.MethodPost,
		Target: "/api/recipes",
		Body: `{"ingredients":[{"id":1,"amount":2}],"tags":[1],` +
			`"image":"https://example.com/a.png","name":"a","text":"b","cooking_time":5}`,
		UserID: 1,
	})
	apitest.ExpectError(t, w, http.StatusInternalServerError, apiError.InternalServerError)
}

func TestHandleUpdateRecipe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		role       role.Role
		setup      func(*database.MockQuerier)
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{
			name:   "author updates name",
			body:   `{"name":"waffles"}`,
			userID: 1,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
				m.EXPECT().UpdateRecipe(gomock.Any(), database.UpdateRecipeParams{
					ID:   4,
					Name: pgtype.Text{String: "Waffles", Valid: true},
				}).Return(nil)
				expectLoad(m, 4, 1)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "admin replaces tags and ingredients",
			body:   `{"tags":[2],"ingredients":[{"id":3,"amount":5}],"cooking_time":20}`,
			userID: 9,
			role:   role.RoleAdmin,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
				m.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{3}).Return(int64(1), nil)
				m.EXPECT().CountTagsByIDs(gomock.Any(), []int64{2}).Return(int64(1), nil)
				gomock.InOrder(
					m.EXPECT().UpdateRecipe(gomock.Any(), database.UpdateRecipeParams{
						ID:          4,
						CookingTime: pgtype.Int4{Int32: 20, Valid: true},
					}).Return(nil),
					m.EXPECT().DeleteRecipeTags(gomock.Any(), int64(4)).Return(nil),
					m.EXPECT().AddRecipeTags(gomock.Any(), database.AddRecipeTagsParams{
						RecipeID: 4,
						TagIds:   []int64{2},
					}).Return(nil),
					m.EXPECT().DeleteRecipeIngredients(gomock.Any(), int64(4)).Return(nil),
					m.EXPECT().AddRecipeIngredients(gomock.Any(), database.AddRecipeIngredientsParams{
						RecipeID:      4,
						IngredientIds: []int64{3},
						Amounts:       []int32{5},
					}).Return(nil),
				)
				expectLoad(m, 4, 9)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "other user",
			body:   `{"name":"waffles"}`,
			userID: 2,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiError.RecipeNotOwned,
		},
		{
			name:   "missing recipe",
			body:   `{"name":"waffles"}`,
			userID: 1,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(0), pgx.ErrNoRows)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiError.RecipeNotFound,
		},
		{
			name:   "empty tags",
			body:   `{"tags":[]}`,
			userID: 1,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationError,
		},
		{
			name:   "blank name",
			body:   `{"name":"   "}`,
			userID: 1,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationError,
		},
		{
			name:   "empty name",
			body:   `{"name":""}`,
			userID: 1,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiError.ValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockDB := database.NewMockQuerier(ctrl)
			tt.setup(mockDB)

			w := apitest.Serve(HandleUpdateRecipe, apitest.NewEnv(mockDB), apitest.Request{
				Method: http.MethodPatch,
				Target: "/api/recipes/4",
				Body:   tt.body,
				UserID: tt.userID,
				Role:   tt.role,
				Params: map[string]string{"id": "4"},
			})
			if tt.wantStatus == http.StatusOK {
				if w.Code != http.StatusOK {
					t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
				}
				return
			}
			apitest.ExpectError(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestHandleDeleteRecipe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)
	e := apitest.NewEnv(mockDB)
	req := apitest.Request{
		Method: http.MethodDelete,
		Target: "/api/recipes/4",
		UserID: 1,
		Params: map[string]string{"id": "4"},
	}

	mockDB.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(1), nil)
	mockDB.EXPECT().DeleteRecipe(gomock.Any(), int64(4)).DoAndReturn(
		func(_ context.Context, id int64) error {
			if id != 4 {
				t.Errorf("expected recipe 4, got %d", id)
			}
			return nil
		})
	w := apitest.Serve(HandleDeleteRecipe, e, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	mockDB.EXPECT().GetRecipeAuthor(gomock.Any(), int64(4)).Return(int64(3), nil)
	w = apitest.Serve(HandleDeleteRecipe, e, req)
	apitest.ExpectError(t, w, http.StatusForbidden, apiError.RecipeNotOwned)
}
