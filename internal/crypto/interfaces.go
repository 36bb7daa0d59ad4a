// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher encrypts and decrypts vault secrets with a single fixed key.
//
// Every Encrypt call draws a fresh random IV, so encrypting the same
// plaintext twice yields different ciphertexts. Decrypt reports every
// padding defect through the same error value.
type Cipher interface {
	// Encrypt pads plaintext with PKCS#7 and encrypts it in CBC mode.
	// It returns the ciphertext and the IV that was generated for it.
	Encrypt(plaintext []byte) (ciphertext []byte, iv []byte, err error)

	// Decrypt reverses Encrypt for the given ciphertext and IV.
	Decrypt(ciphertext, iv []byte) ([]byte, error)

	// EncryptString encrypts a UTF-8 string and returns the ciphertext and
	// IV as lowercase hex.
	EncryptString(plaintext string) (ciphertextHex string, ivHex string, err error)

	// DecryptString decodes hex ciphertext and IV, decrypts them and
	// returns the plaintext as a UTF-8 string.
	DecryptString(ciphertextHex, ivHex string) (string, error)
}
