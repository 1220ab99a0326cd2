package setup

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
)

func init() {
	hashParams = argon2id.ArgonParams{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  argon2id.DefaultSaltLength,
		KeyLength:   argon2id.DefaultKeyLength,
	}
}

func TestAdmin(t *testing.T) {
	validPassword := config.AdminPassword("SecureP@ssw0rd123!")

	configure := func(c *config.Config) {
		c.Admin.Email = "admin@example.com"
		c.Admin.Username = "admin"
		c.Admin.Password = validPassword
		c.Admin.FirstName = "Admin"
		c.Admin.LastName = "User"
	}

	tests := []struct {
		name      string
		setup     func(*config.Config, *database.MockQuerier)
		wantError bool
	}{
		{
			name: "admin already exists - skip setup",
			setup: func(c *config.Config, mockDB *database.MockQuerier) {
				configure(c)
				mockDB.EXPECT().
					GetAdminCount(gomock.Any()).
					Return(int64(1), nil)
			},
			wantError: false,
		},
		{
			name: "admin email not set - skip setup",
			setup: func(c *config.Config, _ *database.MockQuerier) {
				configure(c)
				c.Admin.Email = ""
			},
			wantError: false,
		},
		{
			name: "admin password not set - skip setup",
			setup: func(c *config.Config, _ *database.MockQuerier) {
				configure(c)
				c.Admin.Password = ""
			},
			wantError: false,
		},
		{
			name: "weak admin password - error",
			setup: func(c *config.Config, mockDB *database.MockQuerier) {
				configure(c)
				c.Admin.Password = "password"
				mockDB.EXPECT().
					GetAdminCount(gomock.Any()).
					Return(int64(0), nil)
			},
			wantError: true,
		},
		{
			name: "database error on GetAdminCount - error",
			setup: func(c *config.Config, mockDB *database.MockQuerier) {
				configure(c)
				mockDB.EXPECT().
					GetAdminCount(gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantError: true,
		},
		{
			name: "database error on CreateAdmin - error",
			setup: func(c *config.Config, mockDB *database.MockQuerier) {
				configure(c)
				mockDB.EXPECT().
					GetAdminCount(gomock.Any()).
					Return(int64(0), nil)
				mockDB.EXPECT().
					CreateAdmin(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("create admin error"))
			},
			wantError: true,
		},
		{
			name: "successful admin creation",
			setup: func(c *config.Config, mockDB *database.MockQuerier) {
				configure(c)
				c.Admin.FirstName = "John"
				c.Admin.LastName = "Doe"

				mockDB.EXPECT().
					GetAdminCount(gomock.Any()).
					Return(int64(0), nil)
				mockDB.EXPECT().
					CreateAdmin(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params database.CreateAdminParams) (int64, error) {
						if params.FirstName != "John" {
							t.Errorf("expected FirstName 'John', got %q", params.FirstName)
						}
						if params.LastName != "Doe" {
							t.Errorf("expected LastName 'Doe', got %q", params.LastName)
						}
						if params.Username != "admin" {
							t.Errorf("expected Username 'admin', got %q", params.Username)
						}
						if params.Email != "admin@example.com" {
							t.Errorf("expected Email 'admin@example.com', got %q", params.Email)
						}
						ok, err := argon2id.Compare(string(validPassword), params.PasswordHash)
						if err != nil || !ok {
							t.Errorf("password hash does not match: %v", err)
						}
						return int64(1), nil
					})
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := database.NewMockQuerier(ctrl)
			e := env.New(nil, database.NoTx{Querier: mockDB})
			tt.setup(&e.Config, mockDB)

			err := Admin(context.Background(), e)
			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
