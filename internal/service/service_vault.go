package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService encrypts secrets on the way in and decrypts them on the way
// out. It never logs a secret, in either form.
type vaultService struct {
	repo   store.VaultRepository
	cipher crypto.Cipher
	ids    IDGenerator
	now    func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewVaultService constructs a VaultService over repo and cipher.
func NewVaultService(repo store.VaultRepository, cipher crypto.Cipher, ids IDGenerator, m *metrics.Metrics, logger *logger.Logger) VaultService {
	return &vaultService{
		repo:    repo,
		cipher:  cipher,
		ids:     ids,
		now:     time.Now,
		metrics: m,
		logger:  logger,
	}
}

// Create encrypts req.Password under a fresh IV and stores the entry.
// The response carries the decrypted secret once.
func (v *vaultService) Create(ctx context.Context, owner uuid.UUID, req models.CreateEntryRequest) (models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	ciphertext, iv, err := v.cipher.EncryptString(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Create").Msg("failed to encrypt secret")
		return models.EntryResponse{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	now := v.timestamp()
	entry := models.VaultEntry{
		ID:                v.ids.Generate(),
		UserID:            owner,
		SiteName:          req.SiteName,
		SiteURL:           nonEmpty(req.SiteURL),
		Username:          req.Username,
		Notes:             nonEmpty(req.Notes),
		EncryptedPassword: ciphertext,
		EncryptionIV:      iv,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	stored, err := v.repo.Insert(ctx, entry)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Create").Str("user_id", owner.String()).Msg("failed to store vault entry")
		return models.EntryResponse{}, fmt.Errorf("failed to store vault entry: %w", err)
	}

	log.Info().Str("func", "*vaultService.Create").Str("entry_id", stored.ID.String()).Msg("vault entry created")

	return v.decrypt(ctx, stored)
}

// List returns every entry of owner that decrypts. Entries that fail are
// left out of Entries, logged, counted and reported by id in Undecryptable.
func (v *vaultService) List(ctx context.Context, owner uuid.UUID) (models.EntryList, error) {
	log := logger.FromContext(ctx)

	entries, err := v.repo.ListByOwner(ctx, owner)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.List").Str("user_id", owner.String()).Msg("failed to list vault entries")
		return models.EntryList{}, fmt.Errorf("failed to list vault entries: %w", err)
	}

	list := models.EntryList{Entries: make([]models.EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		secret, decErr := v.cipher.DecryptString(entry.EncryptedPassword, entry.EncryptionIV)
		if decErr != nil {
			v.metrics.IncDecryptFailures()
			log.Error().
				Err(decErr).
				Str("func", "*vaultService.List").
				Str("entry_id", entry.ID.String()).
				Msg("skipping vault entry that failed to decrypt")
			list.Undecryptable = append(list.Undecryptable, entry.ID)
			continue
		}
		list.Entries = append(list.Entries, entry.ToResponse(secret))
	}

	return list, nil
}

// Get returns one entry of owner. A foreign or missing id yields
// store.ErrEntryNotFound.
func (v *vaultService) Get(ctx context.Context, owner, id uuid.UUID) (models.EntryResponse, error) {
	entry, err := v.repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*vaultService.Get").
			Str("entry_id", id.String()).
			Msg("failed to get vault entry")
		return models.EntryResponse{}, fmt.Errorf("failed to get vault entry: %w", err)
	}

	return v.decrypt(ctx, entry)
}

// Update applies the present fields of req inside one transaction. A new
// password is encrypted under a fresh IV. An empty site_url or notes clears
// the stored value.
func (v *vaultService) Update(ctx context.Context, owner, id uuid.UUID, req models.UpdateEntryRequest) (models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	updated, err := v.repo.Update(ctx, id, owner, func(entry *models.VaultEntry) error {
		if req.SiteName != nil {
			entry.SiteName = *req.SiteName
		}
		if req.SiteURL != nil {
			entry.SiteURL = nonEmpty(req.SiteURL)
		}
		if req.Username != nil {
			entry.Username = *req.Username
		}
		if req.Notes != nil {
			entry.Notes = nonEmpty(req.Notes)
		}
		if req.Password != nil {
			ciphertext, iv, encErr := v.cipher.EncryptString(*req.Password)
			if encErr != nil {
				return fmt.Errorf("%w: %w", ErrEncryptionFailed, encErr)
			}
			entry.EncryptedPassword = ciphertext
			entry.EncryptionIV = iv
		}
		entry.UpdatedAt = v.timestamp()
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Update").Str("entry_id", id.String()).Msg("failed to update vault entry")
		return models.EntryResponse{}, fmt.Errorf("failed to update vault entry: %w", err)
	}

	return v.decrypt(ctx, updated)
}

// Delete removes one entry of owner.
func (v *vaultService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := v.repo.Delete(ctx, id, owner); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*vaultService.Delete").
			Str("entry_id", id.String()).
			Msg("failed to delete vault entry")
		return fmt.Errorf("failed to delete vault entry: %w", err)
	}

	return nil
}

func (v *vaultService) decrypt(ctx context.Context, entry models.VaultEntry) (models.EntryResponse, error) {
	secret, err := v.cipher.DecryptString(entry.EncryptedPassword, entry.EncryptionIV)
	if err != nil {
		v.metrics.IncDecryptFailures()
		logger.FromContext(ctx).Err(err).
			Str("func", "*vaultService.decrypt").
			Str("entry_id", entry.ID.String()).
			Msg("stored secret failed to decrypt")
		return models.EntryResponse{}, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return entry.ToResponse(secret), nil
}

// timestamp is truncated to the precision PostgreSQL stores.
func (v *vaultService) timestamp() time.Time {
	return v.now().UTC().Truncate(time.Microsecond)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	value := *s
	return &value
}
