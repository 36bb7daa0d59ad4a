// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// VaultEntry is a stored credential record as persisted in the database.
//
// The secret is held only as hex ciphertext plus the hex IV used to produce
// it. Every other field is stored in plaintext.
type VaultEntry struct {
	// ID is the UUIDv7 identifier of the entry.
	ID uuid.UUID

	// UserID is the owner. It is immutable after creation.
	UserID uuid.UUID

	SiteName string
	SiteURL  *string
	Username string
	Notes    *string

	// EncryptedPassword is the hex encoded CBC ciphertext of the secret.
	EncryptedPassword string

	// EncryptionIV is the hex encoded IV paired with EncryptedPassword.
	EncryptionIV string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the VaultEntry model.
func (e VaultEntry) TableName() string {
	return "vault_entries"
}

// ToResponse builds the API view of e using the already decrypted secret.
func (e VaultEntry) ToResponse(password string) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		SiteName:  e.SiteName,
		SiteURL:   e.SiteURL,
		Username:  e.Username,
		Password:  password,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// CreateEntryRequest is the body of POST /api/passwords.
type CreateEntryRequest struct {
	SiteName string  `json:"site_name"`
	SiteURL  *string `json:"site_url,omitempty"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Notes    *string `json:"notes,omitempty"`
}

// UpdateEntryRequest is the body of PUT /api/passwords/{id}.
// Only non-nil fields overwrite the stored entry.
type UpdateEntryRequest struct {
	SiteName *string `json:"site_name,omitempty"`
	SiteURL  *string `json:"site_url,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// IsEmpty reports whether the request carries no field at all.
func (r UpdateEntryRequest) IsEmpty() bool {
	return r.SiteName == nil && r.SiteURL == nil && r.Username == nil && r.Password == nil && r.Notes == nil
}

// EntryResponse is the decrypted view of a vault entry returned to its owner.
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	SiteName  string    `json:"site_name"`
	SiteURL   *string   `json:"site_url"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryList is the result of listing a user's vault.
type EntryList struct {
	// Entries holds every entry that decrypted successfully.
	Entries []EntryResponse

	// Undecryptable holds the IDs of entries that were skipped because
	// their ciphertext could not be decrypted.
	Undecryptable []uuid.UUID
}
