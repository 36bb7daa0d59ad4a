package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the case-sensitive scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "

var (
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is empty")
	ErrInvalidAuthorizationScheme = errors.New("authorization header is not a bearer token")
	ErrEmptyBearerToken           = errors.New("bearer token is empty")
)

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Surrounding whitespace around the token is trimmed.
func ParseBearerToken(authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}
	if !strings.HasPrefix(authorizationHeader, BearerPrefix) {
		return "", ErrInvalidAuthorizationScheme
	}

	token := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, BearerPrefix))
	if token == "" {
		return "", ErrEmptyBearerToken
	}

	return token, nil
}

// ParseUnverifiedClaims decodes the claims of a token WITHOUT checking its
// signature. Only for display on the client side, never for authorization.
func ParseUnverifiedClaims(tokenString string) (models.Claims, error) {
	var claims models.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.Claims{}, fmt.Errorf("error decoding token claims: %w", err)
	}

	return claims, nil
}
