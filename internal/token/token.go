// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token issues and verifies the HMAC-SHA256 signed access tokens
// that carry a user's identity between requests.
//
// A token is a compact JWT with the claims
//
//	{"sub": "auth", "user_id": "<uuid>", "iat": <unix>, "exp": <iat+86400>, "iss": "<issuer>"}
//
// and is accepted while the verification instant is at or before exp.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Subject is the fixed purpose label carried in the sub claim.
	Subject = "auth"

	// Lifetime is the validity window of every issued token.
	Lifetime = 24 * time.Hour
)

// Option configures a [Service].
type Option func(*Service)

// WithClock replaces the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service issues and verifies access tokens with a single signing key.
// It is stateless and safe for concurrent use.
type Service struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
	parser     *jwt.Parser
}

// NewService builds a token [Service]. An empty issuer disables the iss check.
func NewService(signingKey []byte, issuer string, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrEmptySigningKey
	}

	s := &Service{
		signingKey: signingKey,
		issuer:     issuer,
		now:        time.Now,
		// exp is checked by hand: the library treats exp as exclusive,
		// tokens here stay valid up to and including that second.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue signs a new token for userID valid for [Lifetime].
func (s *Service) Issue(userID uuid.UUID) (models.Token, error) {
	now := s.now()

	claims := models.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return models.Token{
		Token:        tok,
		SignedString: signed,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the signature, algorithm, structure and expiry of raw and
// returns its claims.
//
// Errors wrap exactly one of [ErrMalformed], [ErrSignatureInvalid] or
// [ErrTokenExpired].
func (s *Service) Verify(raw string) (models.Claims, error) {
	var claims models.Claims

	_, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return models.Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return models.Claims{}, fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
		default:
			return models.Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if err = s.validate(claims); err != nil {
		return models.Claims{}, err
	}

	return claims, nil
}

func (s *Service) validate(claims models.Claims) error {
	if claims.Subject != Subject {
		return fmt.Errorf("%w: unexpected subject %q", ErrMalformed, claims.Subject)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return fmt.Errorf("%w: unexpected issuer %q", ErrMalformed, claims.Issuer)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return fmt.Errorf("%w: missing iat or exp", ErrMalformed)
	}
	if _, err := claims.GetUserID(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if s.now().After(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}

	return nil
}
