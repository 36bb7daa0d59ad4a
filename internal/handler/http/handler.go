package http

import (
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/ratelimit"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  ratelimit.Limiter
	metrics  *metrics.Metrics

	requestTimeout     time.Duration
	trustProxyHeaders  bool
	corsAllowedOrigins []string

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. A nil limiter disables rate limiting
// and nil metrics disable instrumentation.
func NewHandler(services *service.Services, limiter ratelimit.Limiter, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:           services,
		limiter:            limiter,
		metrics:            m,
		requestTimeout:     cfg.RequestTimeout,
		trustProxyHeaders:  cfg.TrustProxyHeaders,
		corsAllowedOrigins: cfg.CORSAllowedOrigins,
		logger:             logger,
	}
}
