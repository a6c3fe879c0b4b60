package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins (e.g. http://localhost:3000) with
// credentials. Preflight requests are answered with 200.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposedHeaders:     []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials:   true,
		MaxAge:             300,
		OptionsPassthrough: false,
	})
}
