// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidEntryID is returned when the {id} path segment is not a UUID.
	// It maps to 404 so a malformed id looks like any other missing entry.
	ErrInvalidEntryID = errors.New("invalid entry id")

	// ErrNoUserInContext means a protected handler ran without the auth
	// middleware binding an owner to the request.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
