package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptySiteName    = errors.New("site name is required")
	ErrSiteNameTooLong  = errors.New("site name is too long")
	ErrEmptyUsername    = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrSiteURLTooLong   = errors.New("site url is too long")
	ErrNotesTooLong     = errors.New("notes are too long")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password is too short")
)
