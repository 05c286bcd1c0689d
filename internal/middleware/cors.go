package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows credentialed browser requests from the given origins.
// Outside production an empty list allows any http(s) origin.
func CORS(allowed []string, production bool) func(next http.Handler) http.Handler {
	origins := allowed
	if len(origins) == 0 && !production {
		origins = []string{"https://*", "http://*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}
