package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every validation failure.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single login failure for both an unknown
	// email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrPasswordHashingFailed = errors.New("password hashing failed")
	ErrDecryptionFailed      = errors.New("stored secret could not be decrypted")
	ErrEncryptionFailed      = errors.New("secret could not be encrypted")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrDatabaseUnavailable   = errors.New("database is unavailable")
)
