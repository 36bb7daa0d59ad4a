package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages identities and the tokens bound to them.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error)

	// ParseToken verifies a raw token and returns its claims.
	ParseToken(ctx context.Context, raw string) (models.Claims, error)
}

// VaultService is the owner-scoped CRUD over vault entries. Every method
// takes the authenticated owner explicitly.
type VaultService interface {
	Create(ctx context.Context, owner uuid.UUID, req models.CreateEntryRequest) (models.EntryResponse, error)
	List(ctx context.Context, owner uuid.UUID) (models.EntryList, error)
	Get(ctx context.Context, owner, id uuid.UUID) (models.EntryResponse, error)
	Update(ctx context.Context, owner, id uuid.UUID, req models.UpdateEntryRequest) (models.EntryResponse, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// AppInfoService reports build and health information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	CheckHealth(ctx context.Context) error
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(userID uuid.UUID) (models.Token, error)
	Verify(raw string) (models.Claims, error)
}

// IDGenerator issues identifiers for new rows.
type IDGenerator interface {
	Generate() uuid.UUID
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// AuthServiceWrapper is the AuthService counterpart of VaultServiceWrapper.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
