package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

const corsMaxAge = 86400

// CORS allows read-only cross-origin access from allowedOrigins. Preflight requests
// are answered directly.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         corsMaxAge,
	}).Handler(next)
}
