package recipes

import (
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/recipe"
)

type ListRecipesResponse = pagination.Response[recipe.Recipe]
