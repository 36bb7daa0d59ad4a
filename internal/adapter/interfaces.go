// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport client used by the command-line
// tool to talk to the vault server.
//
// [VaultClient] covers every server endpoint. The HTTP implementation
// ([NewHTTPVaultClient]) maps non-2xx responses to the sentinel errors in
// errors.go so callers can branch with [errors.Is] (for example
// [ErrNotFound] for 404 or [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// VaultClient is the client side of the vault HTTP API.
type VaultClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Profile returns the account bound to the stored token.
	Profile(ctx context.Context) (models.UserResponse, error)

	CreateEntry(ctx context.Context, req models.CreateEntryRequest) (models.EntryResponse, error)

	// ListEntries returns every readable entry. Entries the server could
	// not decrypt are reported separately by id.
	ListEntries(ctx context.Context) (models.EntryList, error)

	GetEntry(ctx context.Context, id uuid.UUID) (models.EntryResponse, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req models.UpdateEntryRequest) (models.EntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	// Health reports server and database liveness.
	Health(ctx context.Context) (models.HealthResponse, error)
}
