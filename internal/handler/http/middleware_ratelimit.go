package http

import (
	"net"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/ratelimit"
)

// withRateLimit throttles requests per client IP taken from RemoteAddr.
// Proxy headers only count when TrustProxyHeaders enables chi's RealIP
// ahead of it. A limiter error lets the request through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + clientIP(r)

		allowed, err := h.limiter.Allow(r.Context(), key)
		if err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.withRateLimit").Msg("rate limiter error, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			h.metrics.IncRateLimited()
			writeError(w, r, ratelimit.ErrLimitExceeded, "*Handler.withRateLimit")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
