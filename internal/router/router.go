package router

import (
	"net/http"

	"items-api/internal/handler"
	"items-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Only the DELETE route requires the API key; everything else is open.
func New(itemHandler *handler.ItemHandler, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	requireKey := middleware.RequireAPIKey(apiKey, logger)

	// Root endpoint - a plain greeting so hitting the base URL is not a 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "Welcome to the items API"}`))
	})

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Collection routes: list and create.
	collectionHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			itemHandler.List(w, r)
		case http.MethodPost:
			itemHandler.Create(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Single-item routes: fetch, partial update, delete.
	itemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// The stats route shares the /items/ prefix and must win over
		// the {id} match.
		if r.URL.Path == "/items/stats" {
			if r.Method != http.MethodGet {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			itemHandler.Stats(w, r)
			return
		}

		if r.URL.Path == "/items/" {
			collectionHandler(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			itemHandler.GetByID(w, r)
		case http.MethodPatch:
			itemHandler.Update(w, r)
		case http.MethodDelete:
			requireKey(itemHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	mux.HandleFunc("/items", collectionHandler)
	mux.HandleFunc("/items/", itemRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
