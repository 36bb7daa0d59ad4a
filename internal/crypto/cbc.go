// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"
)

// KeySize is the key length accepted by the engine (AES-256).
const KeySize = 32

// BlockFactory builds a block primitive for a key.
type BlockFactory func(key []byte) (cipher.Block, error)

// Option configures a CBC engine.
type Option func(*cbcOptions)

type cbcOptions struct {
	newBlock BlockFactory
	random   io.Reader
}

// WithBlockFactory replaces the default AES block primitive.
func WithBlockFactory(f BlockFactory) Option {
	return func(o *cbcOptions) {
		o.newBlock = f
	}
}

// WithRandom replaces the IV source. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(o *cbcOptions) {
		o.random = r
	}
}

// cbcEngine is the [Cipher] implementation chaining a block primitive in
// CBC mode. The engine holds no mutable state after construction and is
// safe for concurrent use.
type cbcEngine struct {
	block  cipher.Block
	random io.Reader
}

// NewCBCEngine constructs a [Cipher] bound to key.
// The key must be exactly [KeySize] bytes.
func NewCBCEngine(key []byte, opts ...Option) (Cipher, error) {
	o := cbcOptions{
		newBlock: aes.NewCipher,
		random:   rand.Reader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrInvalidKeyLength, len(key), KeySize)
	}

	block, err := o.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyLength, err)
	}

	return &cbcEngine{block: block, random: o.random}, nil
}

// Encrypt implements [Cipher].
func (e *cbcEngine) Encrypt(plaintext []byte) ([]byte, []byte, error) {
	bs := e.block.BlockSize()

	iv := make([]byte, bs)
	if _, err := io.ReadFull(e.random, iv); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrIVGeneration, err)
	}

	padded := pad(plaintext, bs)
	ciphertext := make([]byte, len(padded))

	prev := iv
	for i := 0; i < len(padded); i += bs {
		dst := ciphertext[i : i+bs]
		subtle.XORBytes(dst, padded[i:i+bs], prev)
		e.block.Encrypt(dst, dst)
		prev = dst
	}

	return ciphertext, iv, nil
}

// Decrypt implements [Cipher].
func (e *cbcEngine) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	bs := e.block.BlockSize()

	if len(iv) != bs {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrInvalidIVLength, len(iv), bs)
	}
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCiphertextLength, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))

	prev := iv
	for i := 0; i < len(ciphertext); i += bs {
		current := ciphertext[i : i+bs]
		dst := plaintext[i : i+bs]
		e.block.Decrypt(dst, current)
		subtle.XORBytes(dst, dst, prev)
		prev = current
	}

	return unpad(plaintext, bs)
}

// EncryptString implements [Cipher].
func (e *cbcEngine) EncryptString(plaintext string) (string, string, error) {
	ciphertext, iv, err := e.Encrypt([]byte(plaintext))
	if err != nil {
		return "", "", err
	}

	return hex.EncodeToString(ciphertext), hex.EncodeToString(iv), nil
}

// DecryptString implements [Cipher].
func (e *cbcEngine) DecryptString(ciphertextHex, ivHex string) (string, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %w", ErrEncoding, err)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: iv: %w", ErrEncoding, err)
	}

	plaintext, err := e.Decrypt(ciphertext, iv)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrEncoding)
	}

	return string(plaintext), nil
}
