package server

import (
	"context"
	"net/http"

	"larder/internal/handlers"
	applog "larder/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)

	protected := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireAuthentication(h)
	}
	mux.Handle("/app/api/recipes", protected(handlers.Recipes))
	mux.Handle("/app/api/recipes/generate", protected(handlers.GenerateRecipe))
	mux.Handle("/app/api/recipes/", protected(handlers.RecipeByID))
	mux.Handle("/app/api/meal-plan", protected(handlers.MealPlan))
	mux.Handle("/app/api/meal-plan/", protected(handlers.MealPlanEntryByID))
	mux.Handle("/app/api/shopping-list", protected(handlers.ShoppingList))

	applog.Debug(context.Background(), "routes registered",
		"paths", "/healthz /login /signup /logout /app/api/recipes /app/api/meal-plan /app/api/shopping-list")
	return mux
}
