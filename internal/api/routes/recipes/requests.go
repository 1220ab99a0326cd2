package recipes

type IngredientInput struct {
	ID     int64 `json:"id" validate:"gte=1"`
	Amount int32 `json:"amount"`
} //	@name	IngredientInput

type CreateRecipeRequest struct {
	Ingredients []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64           `json:"tags" validate:"required,min=1,dive,gte=1"`
	Image       string            `json:"image" validate:"required"`
	Name        string            `json:"name" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required,max=5000"`
	CookingTime int32             `json:"cooking_time"`
} //	@name	CreateRecipeRequest

// UpdateRecipeRequest holds the fields to change. Absent fields keep
// their current value.
type UpdateRecipeRequest struct {
	Ingredients []IngredientInput `json:"ingredients" validate:"omitempty,min=1,dive"`
	Tags        []int64           `json:"tags" validate:"omitempty,min=1,dive,gte=1"`
	Image       *string           `json:"image" validate:"omitempty,min=1"`
	Name        *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Text        *string           `json:"text" validate:"omitempty,min=1,max=5000"`
	CookingTime *int32            `json:"cooking_time"`
} //	@name	UpdateRecipeRequest

// input is the common shape of create and update requests.
// Nil fields were not provided.
type input struct {
	Ingredients []IngredientInput
	Tags        []int64
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int32
}

func (r CreateRecipeRequest) input() input {
	return input{
		Ingredients: r.Ingredients,
		Tags:        r.Tags,
		Name:        &r.Name,
		Text:        &r.Text,
		Image:       &r.Image,
		CookingTime: &r.CookingTime,
	}
}

func (r UpdateRecipeRequest) input() input {
	return input{
		Ingredients: r.Ingredients,
		Tags:        r.Tags,
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func (i input) ingredientIDs() []int64 {
	ids := make([]int64, len(i.Ingredients))
	for n, ingredient := range i.Ingredients {
		ids[n] = ingredient.ID
	}
	return ids
}

func (i input) amounts() []int32 {
	amounts := make([]int32, len(i.Ingredients))
	for n, ingredient := range i.Ingredients {
		amounts[n] = ingredient.Amount
	}
	return amounts
}
