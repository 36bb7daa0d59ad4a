// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ─────────────────────────────────────────────
// Fake: store.UserRepository
// ─────────────────────────────────────────────

type fakeUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]models.User

	findErr   error
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]models.User)}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return models.User{}, f.findErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

func (f *fakeUserRepository) FindUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return models.User{}, f.findErr
	}
	for _, user := range f.byEmail {
		if user.UserID == id {
			return user, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

// ─────────────────────────────────────────────
// Fake: store.VaultRepository
// ─────────────────────────────────────────────

// fakeVaultRepository keeps entries in insertion order and enforces the
// owner check the same way the SQL repository does.
type fakeVaultRepository struct {
	mu      sync.Mutex
	entries []models.VaultEntry

	err error
}

func (f *fakeVaultRepository) Insert(_ context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return models.VaultEntry{}, f.err
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeVaultRepository) GetByIDAndOwner(_ context.Context, id, owner uuid.UUID) (models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return models.VaultEntry{}, f.err
	}
	i := f.indexOf(id, owner)
	if i < 0 {
		return models.VaultEntry{}, store.ErrEntryNotFound
	}
	return f.entries[i], nil
}

func (f *fakeVaultRepository) ListByOwner(_ context.Context, owner uuid.UUID) ([]models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	var out []models.VaultEntry
	for _, entry := range f.entries {
		if entry.UserID == owner {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeVaultRepository) Update(_ context.Context, id, owner uuid.UUID, mutate func(*models.VaultEntry) error) (models.VaultEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return models.VaultEntry{}, f.err
	}
	i := f.indexOf(id, owner)
	if i < 0 {
		return models.VaultEntry{}, store.ErrEntryNotFound
	}
	working := f.entries[i]
	if err := mutate(&working); err != nil {
		return models.VaultEntry{}, err
	}
	working.ID, working.UserID, working.CreatedAt = f.entries[i].ID, f.entries[i].UserID, f.entries[i].CreatedAt
	f.entries[i] = working
	return working, nil
}

func (f *fakeVaultRepository) Delete(_ context.Context, id, owner uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	i := f.indexOf(id, owner)
	if i < 0 {
		return store.ErrEntryNotFound
	}
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
	return nil
}

func (f *fakeVaultRepository) indexOf(id, owner uuid.UUID) int {
	for i, entry := range f.entries {
		if entry.ID == id && entry.UserID == owner {
			return i
		}
	}
	return -1
}

// ─────────────────────────────────────────────
// Fake: crypto.Cipher
// ─────────────────────────────────────────────

// failingCipher fails the operations it has an error for and otherwise
// delegates to inner.
type failingCipher struct {
	inner interface {
		EncryptString(string) (string, string, error)
		DecryptString(string, string) (string, error)
	}
	encryptErr error
	decryptErr error
}

func (c *failingCipher) Encrypt([]byte) ([]byte, []byte, error) {
	return nil, nil, errors.New("not used")
}

func (c *failingCipher) Decrypt([]byte, []byte) ([]byte, error) {
	return nil, errors.New("not used")
}

func (c *failingCipher) EncryptString(plaintext string) (string, string, error) {
	if c.encryptErr != nil {
		return "", "", c.encryptErr
	}
	return c.inner.EncryptString(plaintext)
}

func (c *failingCipher) DecryptString(ciphertextHex, ivHex string) (string, error) {
	if c.decryptErr != nil {
		return "", c.decryptErr
	}
	return c.inner.DecryptString(ciphertextHex, ivHex)
}

// ─────────────────────────────────────────────
// Fake: TokenManager / IDGenerator / Pinger
// ─────────────────────────────────────────────

type fakeTokenManager struct {
	issueErr  error
	verifyErr error
	claims    models.Claims
}

func (f *fakeTokenManager) Issue(userID uuid.UUID) (models.Token, error) {
	if f.issueErr != nil {
		return models.Token{}, f.issueErr
	}
	return models.Token{SignedString: "token-for-" + userID.String(), UserID: userID}, nil
}

func (f *fakeTokenManager) Verify(string) (models.Claims, error) {
	if f.verifyErr != nil {
		return models.Claims{}, f.verifyErr
	}
	return f.claims, nil
}

type sequentialIDs struct {
	mu   sync.Mutex
	next byte
}

func (s *sequentialIDs) Generate() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	var id uuid.UUID
	id[15] = s.next
	return id
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string {
	return &s
}
