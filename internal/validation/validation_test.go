package validation

import (
	"strings"
	"testing"
)

type tagRequest struct {
	Name  string `json:"name" validate:"required,max=10"`
	Color string `json:"color" validate:"required,hexcolor6"`
	Slug  string `json:"slug" validate:"required,slug"`
}

type userRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=150,username"`
}

type itemRequest struct {
	ID     int64 `json:"id" validate:"gte=1"`
	Amount int32 `json:"amount" validate:"gte=1"`
}

type listRequest struct {
	Items []itemRequest `json:"items" validate:"required,min=1,dive"`
	Tags  []int64       `json:"tags" validate:"required,min=1,unique"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		wantFields map[string]string
	}{
		{
			name:  "valid tag",
			input: &tagRequest{Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"},
		},
		{
			name:  "invalid tag",
			input: &tagRequest{Name: "much-too-long-name", Color: "E26C2D", Slug: "not a slug"},
			wantFields: map[string]string{
				"name":  "name must be at most 10 characters",
				"color": "color must be a HEX color such as #49B64E",
				"slug":  "slug may contain only letters, digits, hyphens and underscores",
			},
		},
		{
			name:  "missing fields",
			input: &tagRequest{},
			wantFields: map[string]string{
				"name":  "name is required",
				"color": "color is required",
				"slug":  "slug is required",
			},
		},
		{
			name:  "valid user",
			input: &userRequest{Email: "chef@example.com", Username: "chef.master+1"},
		},
		{
			name:  "non-latin username",
			input: &userRequest{Email: "ivan@example.com", Username: "Иван_99"},
		},
		{
			name:  "invalid user",
			input: &userRequest{Email: "not-an-email", Username: "bad name!"},
			wantFields: map[string]string{
				"email":    "email must be a valid email address",
				"username": "username may contain only letters, digits and @/./+/-/_",
			},
		},
		{
			name:  "nested items",
			input: &listRequest{Items: []itemRequest{{ID: 1, Amount: 1}, {ID: -1, Amount: 0}}, Tags: []int64{1, 2}},
			wantFields: map[string]string{
				"items[1].id":     "id must be greater than or equal to 1",
				"items[1].amount": "amount must be greater than or equal to 1",
			},
		},
		{
			name:  "empty and duplicate lists",
			input: &listRequest{Items: []itemRequest{}, Tags: []int64{3, 3}},
			wantFields: map[string]string{
				"items": "items must be at least 1 items",
				"tags":  "tags must not contain duplicates",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ValidateStruct(tt.input)
			if len(tt.wantFields) == 0 {
				if fields != nil {
					t.Fatalf("expected no errors, got %v", fields)
				}
				return
			}
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("expected %d fields, got %v", len(tt.wantFields), fields)
			}
			for field, want := range tt.wantFields {
				msgs, ok := fields[field]
				if !ok {
					t.Errorf("expected error for field %q, got %v", field, fields)
					continue
				}
				if msgs[0] != want {
					t.Errorf("field %q: expected %q, got %q", field, want, msgs[0])
				}
			}
		})
	}
}

func TestFieldErrorsError(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("name", "name is required")
	fields.Add("color", "color is required")
	fields.Add("color", "color must be a HEX color such as #49B64E")

	got := fields.Error()
	want := "color: color is required, color must be a HEX color such as #49B64E; name: name is required"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if !strings.Contains(FieldErrors{}.Error(), "validation failed") {
		t.Errorf("expected generic message for empty errors")
	}
}
