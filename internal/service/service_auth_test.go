// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/token"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)

// newTestAuthService returns the bare *authService with a real token
// service and the cheapest bcrypt cost.
func newTestAuthService(t *testing.T, users store.UserRepository) (*authService, *token.Service, *metrics.Metrics) {
	t.Helper()

	tokens, err := token.NewService([]byte(strings.Repeat("k", 32)), "test-issuer")
	require.NoError(t, err)

	m := metrics.NewMetrics()
	svc := NewAuthService(users, tokens, &sequentialIDs{}, config.App{BcryptCost: bcrypt.MinCost}, m, logger.Nop()).(*authService)
	svc.now = fixedClock(testNow)

	return svc, tokens, m
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse battery",
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	users := newFakeUserRepository()
	svc, tokens, _ := newTestAuthService(t, users)

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email, "email is stored lower-cased")
	assert.Equal(t, testNow.Truncate(time.Microsecond), resp.User.CreatedAt)
	assert.NotEqual(t, uuid.Nil, resp.User.UserID)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.UserID.String(), claims.UserID)

	stored, err := users.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepository()
	svc, _, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.Email = "ALICE@example.com"
	_, err = svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Register_RaceOnUniqueIndex(t *testing.T) {
	users := newFakeUserRepository()
	users.createErr = store.ErrEmailAlreadyExists
	svc, _, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Register_LookupError(t *testing.T) {
	users := newFakeUserRepository()
	users.findErr = store.ErrExecutingQuery
	svc, _, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestAuthService_Register_TokenFailure(t *testing.T) {
	users := newFakeUserRepository()
	svc, _, _ := newTestAuthService(t, users)
	svc.tokens = &fakeTokenManager{issueErr: token.ErrSigning}

	_, err := svc.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
	assert.ErrorIs(t, err, token.ErrSigning)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	users := newFakeUserRepository()
	svc, tokens, _ := newTestAuthService(t, users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    " alice@EXAMPLE.com ",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.User, resp.User)
	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.UserID.String(), claims.UserID)
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := newFakeUserRepository()
	svc, _, m := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, errors.Is(wrongPassword, ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, ErrInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues(metrics.ReasonBadCredentials)))
}

func TestAuthService_Login_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	users := newFakeUserRepository()
	users.findErr = store.ErrTransient
	svc, _, _ := newTestAuthService(t, users)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrTransient)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── GetProfile ───────────────────────────────────────────────────────────────

func TestAuthService_GetProfile(t *testing.T) {
	users := newFakeUserRepository()
	svc, _, _ := newTestAuthService(t, users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	user, err := svc.GetProfile(context.Background(), registered.User.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestAuthService_ParseToken_PassesSentinelsThrough(t *testing.T) {
	svc, _, _ := newTestAuthService(t, newFakeUserRepository())

	for _, sentinel := range []error{token.ErrMalformed, token.ErrSignatureInvalid, token.ErrTokenExpired} {
		svc.tokens = &fakeTokenManager{verifyErr: sentinel}

		_, err := svc.ParseToken(context.Background(), "whatever")

		assert.ErrorIs(t, err, sentinel)
	}
}

func TestAuthService_ParseToken_Valid(t *testing.T) {
	svc, tokens, _ := newTestAuthService(t, newFakeUserRepository())
	userID := uuid.New()

	issued, err := tokens.Issue(userID)
	require.NoError(t, err)

	claims, err := svc.ParseToken(context.Background(), issued.SignedString)
	require.NoError(t, err)

	got, err := claims.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

// ── AuthValidationService ────────────────────────────────────────────────────

func TestAuthValidationService_RejectsBeforeInner(t *testing.T) {
	users := newFakeUserRepository()
	inner, _, _ := newTestAuthService(t, users)
	svc := NewAuthValidationService().Wrap(inner)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "register with invalid email",
			call: func() error {
				req := validRegisterRequest()
				req.Email = "not-an-email"
				_, err := svc.Register(context.Background(), req)
				return err
			},
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name: "register with short password",
			call: func() error {
				req := validRegisterRequest()
				req.Password = "short"
				_, err := svc.Register(context.Background(), req)
				return err
			},
			wantErr: validators.ErrPasswordTooShort,
		},
		{
			name: "login with empty password",
			call: func() error {
				_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com"})
				return err
			},
			wantErr: validators.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, users.byEmail, "nothing reaches the repository")
}

func TestAuthValidationService_PassesValidRequests(t *testing.T) {
	inner, _, _ := newTestAuthService(t, newFakeUserRepository())
	svc := NewAuthValidationService().Wrap(inner)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
}
