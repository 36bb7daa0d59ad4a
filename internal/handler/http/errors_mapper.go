package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/ratelimit"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/token"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusMap is checked in order and the first match wins. A wrapped
// store error may carry both ErrTransient and a low-level sentinel, so
// ErrTransient comes before the 500 group.
var errorStatusMap = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrNoUserInContext, http.StatusUnauthorized},
	{utils.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationScheme, http.StatusUnauthorized},
	{utils.ErrEmptyBearerToken, http.StatusUnauthorized},
	{token.ErrTokenExpired, http.StatusUnauthorized},
	{token.ErrSignatureInvalid, http.StatusUnauthorized},
	{token.ErrMalformed, http.StatusUnauthorized},

	{ErrInvalidEntryID, http.StatusNotFound},
	{store.ErrEntryNotFound, http.StatusNotFound},
	{store.ErrNoUserWasFound, http.StatusNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict},

	{ratelimit.ErrLimitExceeded, http.StatusTooManyRequests},

	{store.ErrTransient, http.StatusServiceUnavailable},
	{service.ErrDatabaseUnavailable, http.StatusServiceUnavailable},

	{service.ErrDecryptionFailed, http.StatusInternalServerError},
	{service.ErrEncryptionFailed, http.StatusInternalServerError},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{service.ErrPasswordHashingFailed, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the response body for err. Only validation
// errors echo their text; every other status answers with a fixed message.
func messageFromError(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusUnauthorized:
		if errors.Is(err, service.ErrInvalidCredentials) {
			return app.MsgInvalidCredentials
		}
		return app.MsgUnauthorized
	case http.StatusNotFound:
		return app.MsgNotFound
	case http.StatusConflict:
		return app.MsgEmailAlreadyRegistered
	case http.StatusTooManyRequests:
		return app.MsgTooManyRequests
	default:
		return http.StatusText(status)
	}
}

// writeError maps err to a status, logs it and writes a plain text body.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Info()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	http.Error(w, messageFromError(err, status), status)
}
