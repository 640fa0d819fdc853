// Package router sets up all HTTP routes and middleware chains for the
// flyer entry API. Routes are grouped under /api; draft editing has its
// own subtree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"capflyer/internal/handlers"
	"capflyer/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hierarchy", api.Hierarchy)

		// Storage-backed operations.
		r.Post("/append-product", api.AppendProduct)
		r.Get("/master-products", api.MasterSearch)
		r.Post("/master-products/append", api.MasterAppend)
		r.Post("/flyers", api.SaveFlyer)

		// Draft editing (Valkey-backed session state).
		r.Route("/draft", func(r chi.Router) {
			r.Get("/products", api.DraftList)
			r.Post("/products", api.DraftAdd)
			r.Put("/products/{id}", api.DraftUpdate)
			r.Delete("/products/{id}", api.DraftRemove)
			r.Post("/flyer", api.DraftAttach)
			r.Post("/loaded/merge", api.DraftMergeLoaded)
			r.Get("/preview", api.DraftPreview)
			r.Delete("/", api.DraftClear)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
