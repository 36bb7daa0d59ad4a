package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists registered identities.
type UserRepository interface {
	// CreateUser inserts user and returns the stored record.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns [ErrNoUserWasFound] when nobody registered email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns [ErrNoUserWasFound] when id is unknown.
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// VaultRepository persists encrypted vault entries. Every method that
// addresses a single entry filters by id AND owner in one statement.
type VaultRepository interface {
	Insert(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	GetByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (models.VaultEntry, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.VaultEntry, error)

	// Update loads the entry under a row lock, applies mutate to it and
	// persists the changed columns in the same transaction. An error from
	// mutate aborts the transaction and is returned unchanged.
	Update(ctx context.Context, id, owner uuid.UUID, mutate func(*models.VaultEntry) error) (models.VaultEntry, error)

	Delete(ctx context.Context, id, owner uuid.UUID) error
}

// ErrorClassificator classifies driver errors independently of the backend.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
