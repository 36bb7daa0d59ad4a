package validators

import (
	"context"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldSiteName = "site_name"
	FieldSiteURL  = "site_url"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldNotes    = "notes"
	FieldEmail    = "email"
)

// Length limits, counted in characters.
const (
	MaxSiteNameLength = 255
	MaxUsernameLength = 255
	MaxSiteURLLength  = 2048
	MaxNotesLength    = 10000

	// MaxSecretLength bounds the stored secret, counted in bytes.
	MaxSecretLength = 4096
)

// VaultEntryValidator implements [Validator] for vault entry requests:
// models.CreateEntryRequest and models.UpdateEntryRequest, by value or
// pointer.
type VaultEntryValidator struct{}

// NewVaultEntryValidator constructs a [VaultEntryValidator].
func NewVaultEntryValidator() Validator {
	return &VaultEntryValidator{}
}

// Validate dispatches on the dynamic type of obj. Unknown types yield
// [ErrUnsupportedType].
func (v *VaultEntryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateEntryRequest:
		return v.validateCreate(ctx, value, fields...)
	case *models.CreateEntryRequest:
		return v.validateCreate(ctx, *value, fields...)

	case models.UpdateEntryRequest:
		return v.validateUpdate(ctx, value, fields...)
	case *models.UpdateEntryRequest:
		return v.validateUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateCreate checks every field by default. site_name, username and
// password are required.
func (v *VaultEntryValidator) validateCreate(_ context.Context, req models.CreateEntryRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSiteName, FieldSiteURL, FieldUsername, FieldPassword, FieldNotes}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldSiteName:
			err = checkSiteName(req.SiteName)
		case FieldSiteURL:
			err = checkOptional(req.SiteURL, MaxSiteURLLength, ErrSiteURLTooLong)
		case FieldUsername:
			err = checkUsername(req.Username)
		case FieldPassword:
			err = checkSecret(req.Password)
		case FieldNotes:
			err = checkOptional(req.Notes, MaxNotesLength, ErrNotesTooLong)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateUpdate applies the create rules to the fields that are present.
// An update with no field at all is rejected.
func (v *VaultEntryValidator) validateUpdate(_ context.Context, req models.UpdateEntryRequest, fields ...string) error {
	if req.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldSiteName, FieldSiteURL, FieldUsername, FieldPassword, FieldNotes}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldSiteName:
			if req.SiteName != nil {
				err = checkSiteName(*req.SiteName)
			}
		case FieldSiteURL:
			err = checkOptional(req.SiteURL, MaxSiteURLLength, ErrSiteURLTooLong)
		case FieldUsername:
			if req.Username != nil {
				err = checkUsername(*req.Username)
			}
		case FieldPassword:
			if req.Password != nil {
				err = checkSecret(*req.Password)
			}
		case FieldNotes:
			err = checkOptional(req.Notes, MaxNotesLength, ErrNotesTooLong)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func checkSiteName(s string) error {
	if s == "" {
		return ErrEmptySiteName
	}
	if utf8.RuneCountInString(s) > MaxSiteNameLength {
		return ErrSiteNameTooLong
	}
	return nil
}

func checkUsername(s string) error {
	if s == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(s) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

func checkSecret(s string) error {
	if s == "" {
		return ErrEmptyPassword
	}
	if len(s) > MaxSecretLength {
		return ErrPasswordTooLong
	}
	return nil
}

func checkOptional(s *string, limit int, tooLong error) error {
	if s != nil && utf8.RuneCountInString(*s) > limit {
		return tooLong
	}
	return nil
}
