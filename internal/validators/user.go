package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	MinAccountPasswordLength = 8

	// MaxAccountPasswordLength is the bcrypt input limit in bytes.
	MaxAccountPasswordLength = 72
)

// UserValidator implements [Validator] for models.RegisterRequest and
// models.LoginRequest.
type UserValidator struct{}

// NewUserValidator constructs a [UserValidator].
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = checkUsername(req.Username)
		case FieldEmail:
			err = checkEmail(req.Email)
		case FieldPassword:
			switch {
			case len(req.Password) < MinAccountPasswordLength:
				err = ErrPasswordTooShort
			case len(req.Password) > MaxAccountPasswordLength:
				err = ErrPasswordTooLong
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateLogin only checks presence.
func (v *UserValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checkEmail accepts a bare address only, without a display name.
// Surrounding whitespace is ignored; the service stores the trimmed form.
func checkEmail(s string) error {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return ErrInvalidEmail
	}
	return nil
}
