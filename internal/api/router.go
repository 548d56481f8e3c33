package api

import (
	"net/http"

	"github.com/Ruggero-R/EzSupply/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(items *store.Items, categories *store.Categories, users *store.Users, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &SessionHandler{Users: users, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{Users: users}
	categoriesHandler := &CategoriesHandler{Categories: categories}
	itemsHandler := &ItemsHandler{Items: items}

	authMW := AuthMiddleware(jwtSecret)

	// Public: reference-data reads and the first-run pick-a-user flow.
	mux.HandleFunc("POST /api/session", sessionHandler.Select)
	mux.HandleFunc("GET /api/users", usersHandler.List)
	mux.HandleFunc("POST /api/users", usersHandler.Create)
	mux.HandleFunc("GET /api/categories", categoriesHandler.List)

	// Users.
	mux.Handle("GET /api/users/{id}", authMW(http.HandlerFunc(usersHandler.Get)))

	// Categories.
	mux.Handle("POST /api/categories", authMW(http.HandlerFunc(categoriesHandler.Create)))
	mux.Handle("PUT /api/categories/{id}", authMW(http.HandlerFunc(categoriesHandler.Update)))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	return mux
}
