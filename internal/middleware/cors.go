package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// TotalCountHeader carries the number of records matching a listing query
// before pagination.
const TotalCountHeader = "Total-Count"

// CORSConfig holds the cross-origin settings for the listing API.
type CORSConfig struct {
	AllowedOrigins []string
	// MaxAge is how long, in seconds, browsers may cache preflight results.
	MaxAge int
}

// CORS returns a middleware that answers preflight requests and exposes the
// Total-Count and X-Request-ID headers to browser clients. Without the
// explicit exposure a cross-origin client cannot read the total count.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Cache-Control", "Expires", "Pragma", RequestIDHeader},
		ExposedHeaders: []string{TotalCountHeader, RequestIDHeader},
		MaxAge:         cfg.MaxAge,
	})
}
