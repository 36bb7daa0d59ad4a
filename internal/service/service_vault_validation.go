package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultValidationService rejects malformed create and update requests
// before they reach the wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultEntryValidator(),
	}
}

func (v *VaultValidationService) Create(ctx context.Context, owner uuid.UUID, req models.CreateEntryRequest) (models.EntryResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.EntryResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Create(ctx, owner, req)
}

func (v *VaultValidationService) List(ctx context.Context, owner uuid.UUID) (models.EntryList, error) {
	return v.inner.List(ctx, owner)
}

func (v *VaultValidationService) Get(ctx context.Context, owner, id uuid.UUID) (models.EntryResponse, error) {
	return v.inner.Get(ctx, owner, id)
}

func (v *VaultValidationService) Update(ctx context.Context, owner, id uuid.UUID, req models.UpdateEntryRequest) (models.EntryResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.EntryResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, owner, id, req)
}

func (v *VaultValidationService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return v.inner.Delete(ctx, owner, id)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}
