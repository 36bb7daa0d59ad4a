// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keys

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"golang.org/x/crypto/hkdf"
)

const (
	// MinEncryptionSecretLength is the minimum accepted length, in bytes,
	// of APP_ENCRYPTION_KEY.
	MinEncryptionSecretLength = 32

	// MinSigningSecretLength is the minimum accepted length, in bytes,
	// of APP_TOKEN_SIGN_KEY.
	MinSigningSecretLength = 32

	// EncryptionKeySize is the size of the derived AES-256 key.
	EncryptionKeySize = 32

	// SigningKeySize is the size of the derived HMAC-SHA256 key.
	SigningKeySize = 32
)

const (
	encryptionKeyInfo = "go-pass-vault/aes-256-cbc"
	signingKeyInfo    = "go-pass-vault/jwt-hs256"
)

var kdfSalt = []byte("go-pass-vault/key-derivation/v1")

// KeyRing holds the derived key material. It is safe for concurrent use
// because it is never mutated after construction.
type KeyRing struct {
	encryptionKey []byte
	signingKey    []byte
}

// Load validates the secrets carried by cfg and derives a [KeyRing].
func Load(cfg config.App) (*KeyRing, error) {
	return New(cfg.EncryptionKey, cfg.TokenSignKey)
}

// New validates both secrets and derives a [KeyRing] from them.
func New(encryptionSecret, signingSecret string) (*KeyRing, error) {
	switch {
	case encryptionSecret == "":
		return nil, ErrEncryptionKeyMissing
	case len(encryptionSecret) < MinEncryptionSecretLength:
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrEncryptionKeyTooShort, len(encryptionSecret), MinEncryptionSecretLength)
	case signingSecret == "":
		return nil, ErrSigningSecretMissing
	case len(signingSecret) < MinSigningSecretLength:
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrSigningSecretTooShort, len(signingSecret), MinSigningSecretLength)
	}

	encryptionKey, err := derive([]byte(encryptionSecret), encryptionKeyInfo, EncryptionKeySize)
	if err != nil {
		return nil, err
	}

	signingKey, err := derive([]byte(signingSecret), signingKeyInfo, SigningKeySize)
	if err != nil {
		return nil, err
	}

	return &KeyRing{
		encryptionKey: encryptionKey,
		signingKey:    signingKey,
	}, nil
}

// EncryptionKey returns a copy of the symmetric encryption key.
func (k *KeyRing) EncryptionKey() []byte {
	return clone(k.encryptionKey)
}

// SigningKey returns a copy of the token signing key.
func (k *KeyRing) SigningKey() []byte {
	return clone(k.signingKey)
}

func derive(secret []byte, info string, size int) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, kdfSalt, []byte(info))

	key := make([]byte, size)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, err)
	}

	return key, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
