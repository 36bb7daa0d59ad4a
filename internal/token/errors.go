package token

import "errors"

var (
	ErrEmptySigningKey  = errors.New("token signing key is empty")
	ErrMalformed        = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired")
	ErrSigning          = errors.New("error signing token")
)
