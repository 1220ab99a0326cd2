package recipes

import (
	"context"
	"testing"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"go.uber.org/mock/gomock"
)

func TestCheck_NothingProvided(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)

	fields, err := check(context.Background(), mockDB, config.Recipes{MinCookingTime: 1, MinAmount: 1}, input{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fields != nil {
		t.Errorf("expected no field errors, got %v", fields)
	}
}

func TestCheck_ConfiguredMinimums(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)
	mockDB.EXPECT().CountIngredientsByIDs(gomock.Any(), []int64{1}).Return(int64(1), nil)

	cookingTime := int32(5)
	fields, err := check(context.Background(), mockDB, config.Recipes{MinCookingTime: 10, MinAmount: 3}, input{
		Ingredients: []IngredientInput{{ID: 1, Amount: 2}},
		CookingTime: &cookingTime,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := fields["cooking_time"]; len(got) != 1 || got[0] != "cooking_time must be at least 10" {
		t.Errorf("unexpected cooking_time errors %v", got)
	}
	if got := fields["ingredients[0].amount"]; len(got) != 1 || got[0] != "amount must be at least 3" {
		t.Errorf("unexpected amount errors %v", got)
	}
}

func TestCheck_BlankNameAndText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDB := database.NewMockQuerier(ctrl)

	name, text := "   ", "\t\n"
	fields, err := check(context.Background(), mockDB, config.Recipes{MinCookingTime: 1, MinAmount: 1}, input{
		Name: &name,
		Text: &text,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := fields["name"]; len(got) != 1 || got[0] != "name must not be blank" {
		t.Errorf("unexpected name errors %v", got)
	}
	if got := fields["text"]; len(got) != 1 || got[0] != "text must not be blank" {
		t.Errorf("unexpected text errors %v", got)
	}
}

func TestHasDuplicates(t *testing.T) {
	if hasDuplicates([]int64{1, 2, 3}) {
		t.Error("expected no duplicates")
	}
	if !hasDuplicates([]int64{1, 2, 1}) {
		t.Error("expected duplicates")
	}
}
