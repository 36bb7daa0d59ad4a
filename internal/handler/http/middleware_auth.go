package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/token"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via
// [service.AuthService.ParseToken] and binds the owner to the request
// context with [utils.WithUserID]. Any failure answers 401 and the request
// never reaches the handler: an expired token gets the body
// "token is expired", every other failure "Unauthorized".
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			reason := metrics.ReasonMalformed
			if errors.Is(err, utils.ErrEmptyAuthorizationHeader) {
				reason = metrics.ReasonMissingHeader
			}
			h.reject(w, r, err, reason)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrTokenExpired):
				h.reject(w, r, err, metrics.ReasonExpired)
			case errors.Is(err, token.ErrSignatureInvalid):
				h.reject(w, r, err, metrics.ReasonSignatureInvalid)
			default:
				h.reject(w, r, err, metrics.ReasonMalformed)
			}
			return
		}

		userID, err := claims.GetUserID()
		if err != nil {
			h.reject(w, r, err, metrics.ReasonMalformed)
			return
		}

		log.Debug().Str("user_id", userID.String()).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, userID)))
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, err error, reason string) {
	h.metrics.IncAuthFailures(reason)
	logger.FromRequest(r).Info().Err(err).Str("reason", reason).Msg("request rejected by auth middleware")

	if reason == metrics.ReasonExpired {
		http.Error(w, app.MsgTokenIsExpired, http.StatusUnauthorized)
		return
	}
	http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
}
