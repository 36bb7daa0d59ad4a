package http

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-pass-vault/internal/config"
)

// withCORS answers preflight requests and sets CORS headers for the
// configured origins. The token travels in the Authorization header, so
// credentials (cookies) are never allowed.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	origins := h.corsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Authorization", traceIDHeader, UndecryptableHeader},
		MaxAge:         config.DefaultCORSMaxAge,
	})
}
