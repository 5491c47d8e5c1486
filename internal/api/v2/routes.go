package api

import (
	"net/http"

	"github.com/hashicorp-forge/catalog/internal/server"
)

// HealthHandler responds to load balancer health checks.
// Endpoint: GET /health
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
}

// NewMux returns the API router.
func NewMux(srv server.Server) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/health", HealthHandler())

	mux.Handle("/api/v2/products", ProductsHandler(srv))
	mux.Handle("/api/v2/products/", ProductHandler(srv))
	mux.Handle("/api/v2/projects", ProjectsHandler(srv))
	mux.Handle("/api/v2/projects/", ProjectHandler(srv))

	return mux
}
