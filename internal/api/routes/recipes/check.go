package recipes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/recipe"
	"github.com/matt-dz/foodgram/internal/validation"
)

// check validates the parts of in that depend on configuration or on
// stored tags and ingredients. It returns nil when in is acceptable.
func check(ctx context.Context, q database.Querier, conf config.Recipes, in input) (validation.FieldErrors, error) {
	fields := validation.FieldErrors{}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields.Add("name", "name must not be blank")
	}
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		fields.Add("text", "text must not be blank")
	}

	if in.CookingTime != nil && *in.CookingTime < conf.MinCookingTime {
		fields.Add("cooking_time", fmt.Sprintf("cooking_time must be at least %d", conf.MinCookingTime))
	}

	if in.Image != nil {
		if err := recipe.ValidateImage(*in.Image); err != nil {
			fields.Add("image", err.Error())
		}
	}

	if in.Ingredients != nil {
		for n, ingredient := range in.Ingredients {
			if ingredient.Amount < conf.MinAmount {
				fields.Add("ingredients["+strconv.Itoa(n)+"].amount",
					fmt.Sprintf("amount must be at least %d", conf.MinAmount))
			}
		}
		ids := in.ingredientIDs()
		if hasDuplicates(ids) {
			fields.Add("ingredients", "ingredients must not contain duplicates")
		} else {
			count, err := q.CountIngredientsByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("counting ingredients: %w", err)
			}
			if count != int64(len(ids)) {
				fields.Add("ingredients", "ingredients must refer to existing ingredients")
			}
		}
	}

	if in.Tags != nil {
		if hasDuplicates(in.Tags) {
			fields.Add("tags", "tags must not contain duplicates")
		} else {
			count, err := q.CountTagsByIDs(ctx, in.Tags)
			if err != nil {
				return nil, fmt.Errorf("counting tags: %w", err)
			}
			if count != int64(len(in.Tags)) {
				fields.Add("tags", "tags must refer to existing tags")
			}
		}
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
