// Package recipe contains utilities for managing recipes.
package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/matt-dz/foodgram/internal/database"
)

const dataURIPrefix = "data:"

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/svg+xml": true,
	"image/webp":    true,
	"image/gif":     true,
}

var (
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrInvalidImage        = errors.New("image must be an http(s) URL or a base64 data URI")
)

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
} //	@name	Tag

type Author struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
} //	@name	User

type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
} //	@name	IngredientAmount

type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           Author             `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int32              `json:"cooking_time"`
	PubDate          time.Time          `json:"pub_date"`
} //	@name	Recipe

type ShortRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int32  `json:"cooking_time"`
} //	@name	ShortRecipe

func TagFromDB(t database.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func ShortFromDB(r database.ShortRecipeRow) ShortRecipe {
	return ShortRecipe{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

func AuthorFromProfile(p database.UserProfileRow) Author {
	return Author{
		Email:        p.Email,
		ID:           p.ID,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		IsSubscribed: p.IsSubscribed,
	}
}

// Assemble builds recipe forms from recipe rows and the tag and ingredient
// rows of those recipes. The order of rows is preserved.
func Assemble(
	rows []database.RecipeRow,
	tags []database.GetRecipeTagsRow,
	ingredients []database.GetRecipeIngredientsRow,
) []Recipe {
	tagsByRecipe := make(map[int64][]Tag, len(rows))
	for _, t := range tags {
		tagsByRecipe[t.RecipeID] = append(tagsByRecipe[t.RecipeID],
			Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	ingredientsByRecipe := make(map[int64][]IngredientAmount, len(rows))
	for _, i := range ingredients {
		ingredientsByRecipe[i.RecipeID] = append(ingredientsByRecipe[i.RecipeID], IngredientAmount{
			ID:              i.ID,
			Name:            i.Name,
			MeasurementUnit: i.MeasurementUnit,
			Amount:          i.Amount,
		})
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		r := Recipe{
			ID:   row.ID,
			Tags: tagsByRecipe[row.ID],
			Author: Author{
				Email:        row.AuthorEmail,
				ID:           row.AuthorID,
				Username:     row.AuthorUsername,
				FirstName:    row.AuthorFirstName,
				LastName:     row.AuthorLastName,
				IsSubscribed: row.AuthorIsSubscribed,
			},
			Ingredients:      ingredientsByRecipe[row.ID],
			IsFavorited:      row.IsFavorited,
			IsInShoppingCart: row.IsInShoppingCart,
			Name:             row.Name,
			Image:            row.Image,
			Text:             row.Text,
			CookingTime:      row.CookingTime,
			PubDate:          row.PubDate.Time,
		}
		if r.Tags == nil {
			r.Tags = []Tag{}
		}
		if r.Ingredients == nil {
			r.Ingredients = []IngredientAmount{}
		}
		recipes = append(recipes, r)
	}
	return recipes
}

// Load fetches the tags and ingredients of rows and assembles the recipe forms.
func Load(ctx context.Context, q database.Querier, rows []database.RecipeRow) ([]Recipe, error) {
	if len(rows) == 0 {
		return []Recipe{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tags, err := q.GetRecipeTags(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("getting recipe tags: %w", err)
	}
	ingredients, err := q.GetRecipeIngredients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("getting recipe ingredients: %w", err)
	}

	return Assemble(rows, tags, ingredients), nil
}

// Get loads a single recipe form as seen by viewer.
func Get(ctx context.Context, q database.Querier, id, viewer int64) (Recipe, error) {
	row, err := q.GetRecipe(ctx, database.GetRecipeParams{ID: id, ViewerID: viewer})
	if err != nil {
		return Recipe{}, err
	}
	recipes, err := Load(ctx, q, []database.RecipeRow{row})
	if err != nil {
		return Recipe{}, err
	}
	return recipes[0], nil
}

// Capitalize upper-cases the first letter of a recipe name and lower-cases
// the rest.
func Capitalize(name string) string {
	name = strings.TrimSpace(name)
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

// ValidateImage accepts an http(s) URL or a base64 data URI carrying one of
// the allowed image types. The value is stored as given.
func ValidateImage(image string) error {
	if strings.HasPrefix(image, dataURIPrefix) {
		meta, payload, ok := strings.Cut(strings.TrimPrefix(image, dataURIPrefix), ",")
		mimeType, encoding, _ := strings.Cut(meta, ";")
		if !ok || encoding != "base64" || payload == "" {
			return ErrInvalidImage
		}
		if !allowedImageTypes[strings.ToLower(mimeType)] {
			return fmt.Errorf("mime type %q: %w", mimeType, ErrUnsupportedMimeType)
		}
		if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
			return errors.Join(ErrInvalidImage, err)
		}
		return nil
	}

	u, err := url.Parse(image)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidImage
	}
	return nil
}
