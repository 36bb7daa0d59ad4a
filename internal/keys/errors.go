package keys

import "errors"

var (
	ErrEncryptionKeyMissing  = errors.New("encryption key is not configured")
	ErrEncryptionKeyTooShort = errors.New("encryption key is too short")
	ErrSigningSecretMissing  = errors.New("token signing secret is not configured")
	ErrSigningSecretTooShort = errors.New("token signing secret is too short")
	ErrKeyDerivation         = errors.New("key derivation failed")
)
