// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vault server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. Keeping them in one place keeps the wording consistent
// throughout the API.
package app

const (
	// MsgInvalidCredentials is returned by login for an unknown email and
	// for a wrong password alike.
	MsgInvalidCredentials = "invalid credentials"

	// MsgUnauthorized is returned when a bearer token is missing,
	// malformed, or carries a bad signature.
	MsgUnauthorized = "Unauthorized"

	// MsgTokenIsExpired is returned when a bearer token is well formed and
	// correctly signed but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgNotFound covers unknown routes, malformed entry ids, and entries
	// that are missing or owned by someone else.
	MsgNotFound = "not found"

	// MsgEmailAlreadyRegistered is returned when registration hits an
	// existing account email.
	MsgEmailAlreadyRegistered = "email already registered"

	// MsgTooManyRequests is returned when a client exceeds its rate limit.
	MsgTooManyRequests = "too many requests"

	// MsgPasswordDeleted acknowledges DELETE /api/passwords/{id}.
	MsgPasswordDeleted = "Password deleted successfully"
)
