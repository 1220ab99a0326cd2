package users

import (
	"github.com/matt-dz/foodgram/internal/api/pagination"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/recipe"
)

type RegisterResponse struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
} //	@name	RegisterResponse

type Subscription struct {
	Email        string               `json:"email"`
	ID           int64                `json:"id"`
	Username     string               `json:"username"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	IsSubscribed bool                 `json:"is_subscribed"`
	Recipes      []recipe.ShortRecipe `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
} //	@name	Subscription

type ListUsersResponse = pagination.Response[recipe.Author]

type ListSubscriptionsResponse = pagination.Response[Subscription]

func newSubscription(author database.SubscriptionAuthorRow, recipes []recipe.ShortRecipe) Subscription {
	if recipes == nil {
		recipes = []recipe.ShortRecipe{}
	}
	return Subscription{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: author.RecipesCount,
	}
}

// recipesByAuthor groups the short recipes of each author.
func recipesByAuthor(rows []database.ListAuthorRecipesRow) map[int64][]recipe.ShortRecipe {
	grouped := make(map[int64][]recipe.ShortRecipe)
	for _, row := range rows {
		grouped[row.AuthorID] = append(grouped[row.AuthorID], recipe.ShortRecipe{
			ID:          row.ID,
			Name:        row.Name,
			Image:       row.Image,
			CookingTime: row.CookingTime,
		})
	}
	return grouped
}
