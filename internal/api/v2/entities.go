package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp-forge/catalog/internal/server"
	"github.com/hashicorp-forge/catalog/pkg/models"
	"github.com/hashicorp-forge/catalog/pkg/resolve"
	"github.com/hashicorp-forge/catalog/pkg/store"
)

// EntitiesGetResponse is the response for GET /api/v2/{entities}.
type EntitiesGetResponse[E any] struct {
	Items []E `json:"items"`
}

// ProductsHandler handles GET requests for all products.
// Endpoint: GET /api/v2/products
func ProductsHandler(srv server.Server) http.Handler {
	return ListHandler(srv, "Product", store.NewProductStore(srv.DB))
}

// ProductHandler handles GET requests for a single product.
// Endpoint: GET /api/v2/products/{uuid|slug}
func ProductHandler(srv server.Server) http.Handler {
	r := resolve.New[models.Product](
		store.NewProductStore(srv.DB),
		resolve.WithLogger(srv.Logger.Named("resolve")),
	)
	return EntityHandler(srv, "products", "Product", r)
}

// ProjectsHandler handles GET requests for all projects.
// Endpoint: GET /api/v2/projects
func ProjectsHandler(srv server.Server) http.Handler {
	return ListHandler(srv, "Project", store.NewProjectStore(srv.DB))
}

// ProjectHandler handles GET requests for a single project.
// Endpoint: GET /api/v2/projects/{uuid|slug}
func ProjectHandler(srv server.Server) http.Handler {
	r := resolve.New[models.Project](
		store.NewProjectStore(srv.DB),
		resolve.WithLogger(srv.Logger.Named("resolve")),
	)
	return EntityHandler(srv, "projects", "Project", r)
}

// EntityHandler serves GET /api/v2/{apiPath}/{ref}, where ref is either the
// entity's UUID or its slug.
func EntityHandler[E any, R resolve.Repository[E]](
	srv server.Server,
	apiPath string,
	source string,
	resolver *resolve.Resolver[E, R],
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := []any{
			"path", r.URL.Path,
			"method", r.Method,
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ref, err := parseResourceIDFromURL(r.URL.Path, apiPath)
		if err != nil {
			srv.Logger.Warn("error parsing resource reference from URL path",
				append(logArgs, "error", err)...)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		logArgs = append(logArgs, "ref", ref)

		entity, err := resolver.Resolve(r.Context(), ref, source)
		if err != nil {
			if resolve.IsResourceNotFound(err) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			srv.Logger.Error("error resolving entity",
				append(logArgs, "source", source, "error", err)...)
			http.Error(w, "Error resolving "+source, http.StatusInternalServerError)
			return
		}

		respondJSON(w, srv, logArgs, entity)
	})
}

// ListHandler serves GET /api/v2/{apiPath}.
func ListHandler[E any](srv server.Server, source string, s *store.Store[E]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := []any{
			"path", r.URL.Path,
			"method", r.Method,
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		items, err := s.List(r.Context())
		if err != nil {
			srv.Logger.Error("error listing entities",
				append(logArgs, "source", source, "error", err)...)
			http.Error(w, "Error listing "+source, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []E{}
		}

		respondJSON(w, srv, logArgs, EntitiesGetResponse[E]{Items: items})
	})
}

func respondJSON(w http.ResponseWriter, srv server.Server, logArgs []any, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.Logger.Error("error encoding response",
			append(logArgs, "error", err)...)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}
}
