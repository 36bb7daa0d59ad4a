package crypto

import "errors"

var (
	ErrInvalidKeyLength        = errors.New("invalid key length")
	ErrInvalidIVLength         = errors.New("invalid IV length")
	ErrInvalidCiphertextLength = errors.New("invalid ciphertext length")
	ErrPaddingValidationFailed = errors.New("padding validation failed")
	ErrEncoding                = errors.New("invalid encoding")
	ErrIVGeneration            = errors.New("failed to generate IV")
)
