// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an access token.
//
// The standard "sub" claim carries the fixed purpose label "auth"; the owner
// is carried separately in UserID so the subject never has to be parsed.
type Claims struct {
	// UserID is the canonical string form of the owner's UUID.
	UserID string `json:"user_id"`

	jwt.RegisteredClaims
}

// GetUserID parses the user_id claim into a UUID.
func (c Claims) GetUserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error parsing user_id claim: %w", err)
	}

	return id, nil
}

// Token wraps a freshly issued access token.
type Token struct {
	// Token is the underlying JWT used for signing.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the owner the token was issued for.
	UserID uuid.UUID `json:"-"`

	// ExpiresAt mirrors the exp claim.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
