// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/matt-dz/foodgram/docs"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/middleware"
	"github.com/matt-dz/foodgram/internal/api/requestid"
	"github.com/matt-dz/foodgram/internal/api/routes/auth"
	"github.com/matt-dz/foodgram/internal/api/routes/ingredients"
	"github.com/matt-dz/foodgram/internal/api/routes/ping"
	"github.com/matt-dz/foodgram/internal/api/routes/recipes"
	"github.com/matt-dz/foodgram/internal/api/routes/tags"
	"github.com/matt-dz/foodgram/internal/api/routes/users"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/role"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func addDocs(r chi.Router, origin string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(strings.TrimSuffix(origin, "/")+"/api/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Get("/api/swagger/*", swagger.ServeHTTP)
}

func addRoutes(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", auth.HandleLogin)
			r.With(middleware.RequireUser).Post("/logout", auth.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.HandleListUsers)
			r.Post("/", users.HandleRegister)
			r.Get("/{id}", users.HandleGetUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/me", users.HandleMe)
				r.Post("/set_password", users.HandleSetPassword)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{id}/subscribe", users.HandleSubscribe)
				r.Delete("/{id}/subscribe", users.HandleUnsubscribe)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{id}", tags.HandleGetTag)
			r.With(middleware.RequireRole(role.RoleAdmin)).Post("/", tags.HandleCreateTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleListIngredients)
			r.Get("/{id}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleListRecipes)
			r.Get("/{id}", recipes.HandleGetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Post("/", recipes.HandleCreateRecipe)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
				r.Patch("/{id}", recipes.HandleUpdateRecipe)
				r.Delete("/{id}", recipes.HandleDeleteRecipe)
				r.Post("/{id}/favorite", recipes.HandleAddFavorite)
				r.Delete("/{id}/favorite", recipes.HandleRemoveFavorite)
				r.Post("/{id}/shopping_cart", recipes.HandleAddToShoppingCart)
				r.Delete("/{id}/shopping_cart", recipes.HandleRemoveFromShoppingCart)
			})
		})
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	_ = apiError.EncodeError(w, apiError.NotFound, "resource not found", requestid.ExtractRequestID(r.Context()))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = apiError.EncodeError(w, apiError.MethodNotAllowed, "method not allowed", requestid.ExtractRequestID(r.Context()))
}

// NewRouter builds the API router with its middleware stack.
func NewRouter(env *env.Env) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.Cors(env.Config.Server.CORSOrigins))
	router.Use(middleware.RateLimit(env.Config.Server.RateLimitRequests, env.Config.Server.RateLimitWindow))
	router.Use(middleware.LimitBody(env.Config.Server.MaxBodyBytes))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.Authenticate)
	router.Use(chimw.StripSlashes)

	router.NotFound(handleNotFound)
	router.MethodNotAllowed(handleMethodNotAllowed)

	addRoutes(router)
	addDocs(router, env.Config.HostOrigin)
	router.Handle("/metrics", metrics.Handler())

	return router
}

// Start godoc
//
//	@title						Foodgram API
//	@version					1.0
//	@description				API Server for the Foodgram recipe sharing application.
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				"Token <jwt>" or "Bearer <jwt>"
//
//	@BasePath					/
func Start(ctx context.Context, env *env.Env) error {
	addr := fmt.Sprintf(":%d", env.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	env.Logger.InfoContext(ctx, fmt.Sprintf("Listening at 0.0.0.0%s", addr))
	env.Logger.InfoContext(ctx, fmt.Sprintf("Swagger UI available at %s/api/swagger/index.html",
		strings.TrimSuffix(env.Config.HostOrigin, "/")))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		env.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return nil
	}
}
