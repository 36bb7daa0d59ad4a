// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

var testEntryID = uuid.MustParse("018f0000-0000-7000-8000-0000000000e1")

type testApp struct {
	app     *App
	api     *mock.MockVaultClient
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	copied  []string
	secrets []string
}

func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	ta := &testApp{
		api:    mock.NewMockVaultClient(ctrl),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	ta.app = &App{
		api:    ta.api,
		tokens: NewTokenStore(filepath.Join(t.TempDir(), "vault", "token")),
		in:     bufio.NewReader(strings.NewReader(stdin)),
		out:    ta.out,
		errOut: ta.errOut,
		readSecret: func() ([]byte, error) {
			if len(ta.secrets) == 0 {
				return nil, errors.New("no secret queued")
			}
			s := ta.secrets[0]
			ta.secrets = ta.secrets[1:]
			return []byte(s), nil
		},
		copyToClipboard: func(s string) error {
			ta.copied = append(ta.copied, s)
			return nil
		},
		logger: logger.Nop(),
	}
	return ta
}

// loggedIn stores a token and expects it to be attached to the client.
func (ta *testApp) loggedIn(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.app.tokens.Save("saved-token"))
	ta.api.EXPECT().SetToken("saved-token")
}

func sampleEntry() models.EntryResponse {
	url := "https://github.com"
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.EntryResponse{
		ID:        testEntryID,
		SiteName:  "GitHub",
		SiteURL:   &url,
		Username:  "alice",
		Password:  "hunter2",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// ── dispatch ─────────────────────────────────────────────────────────────────

func TestRun_NoCommand(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, ta.errOut.String(), "usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), []string{"explode"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_AuthCommandWithoutToken(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.app.Run(context.Background(), []string{"list"})

	assert.ErrorIs(t, err, adapter.ErrNotLoggedIn)
}

func TestRun_ExpiredSession(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)
	ta.api.EXPECT().ListEntries(gomock.Any()).Return(models.EntryList{}, fmt.Errorf("%w: token is expired", adapter.ErrUnauthorized))

	err := ta.app.Run(context.Background(), []string{"list"})

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Contains(t, err.Error(), "login")
}

// ── account ──────────────────────────────────────────────────────────────────

func TestLogin_PromptsAndSavesToken(t *testing.T) {
	ta := newTestApp(t, "alice@example.com\n")
	ta.secrets = []string{"correct horse"}
	ta.api.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Email: "alice@example.com", Password: "correct horse"}).
		Return(models.AuthResponse{Token: "fresh-token", User: models.UserResponse{Email: "alice@example.com"}}, nil)

	err := ta.app.Run(context.Background(), []string{"login"})

	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), "logged in as alice@example.com")

	token, err := ta.app.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestLogin_FailureKeepsOldToken(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.app.tokens.Save("old-token"))
	ta.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, adapter.ErrUnauthorized)

	err := ta.app.Run(context.Background(), []string{"login", "-email", "a@b.c", "-password", "nope"})

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	token, _ := ta.app.tokens.Load()
	assert.Equal(t, "old-token", token)
}

func TestRegister(t *testing.T) {
	ta := newTestApp(t, "")
	ta.api.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse"}).
		Return(models.AuthResponse{Token: "tok", User: models.UserResponse{Email: "alice@example.com"}}, nil)

	err := ta.app.Run(context.Background(), []string{"register", "-username", "alice", "-email", "alice@example.com", "-password", "correct horse"})

	require.NoError(t, err)
	token, _ := ta.app.tokens.Load()
	assert.Equal(t, "tok", token)
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.app.tokens.Save("tok"))

	require.NoError(t, ta.app.Run(context.Background(), []string{"logout"}))

	token, err := ta.app.tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

// ── entries ──────────────────────────────────────────────────────────────────

func TestAdd_OptionalFieldsOmittedWhenEmpty(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)
	ta.secrets = []string{"hunter2"}
	ta.api.EXPECT().
		CreateEntry(gomock.Any(), models.CreateEntryRequest{SiteName: "GitHub", Username: "alice", Password: "hunter2"}).
		Return(sampleEntry(), nil)

	err := ta.app.Run(context.Background(), []string{"add", "-site", "GitHub", "-username", "alice"})

	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), testEntryID.String())
}

func TestList_PrintsTableWithoutPasswords(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)
	skipped := uuid.MustParse("018f0000-0000-7000-8000-0000000000e2")
	ta.api.EXPECT().ListEntries(gomock.Any()).Return(models.EntryList{
		Entries:       []models.EntryResponse{sampleEntry()},
		Undecryptable: []uuid.UUID{skipped},
	}, nil)

	require.NoError(t, ta.app.Run(context.Background(), []string{"list"}))

	assert.Contains(t, ta.out.String(), "GitHub")
	assert.Contains(t, ta.out.String(), "alice")
	assert.NotContains(t, ta.out.String(), "hunter2")
	assert.Contains(t, ta.errOut.String(), skipped.String())
}

func TestGet(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantHidden bool
		wantCopied []string
	}{
		{name: "masked by default", args: []string{"get", testEntryID.String()}, wantHidden: true},
		{name: "reveal after id", args: []string{"get", testEntryID.String(), "-reveal"}, wantOut: "hunter2"},
		{name: "flags before id", args: []string{"get", "-reveal", testEntryID.String()}, wantOut: "hunter2"},
		{name: "copy", args: []string{"get", testEntryID.String(), "-copy"}, wantHidden: true, wantCopied: []string{"hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, "")
			ta.loggedIn(t)
			ta.api.EXPECT().GetEntry(gomock.Any(), testEntryID).Return(sampleEntry(), nil)

			require.NoError(t, ta.app.Run(context.Background(), tt.args))

			if tt.wantHidden {
				assert.NotContains(t, ta.out.String(), "hunter2")
				assert.Contains(t, ta.out.String(), hiddenSecret)
			}
			if tt.wantOut != "" {
				assert.Contains(t, ta.out.String(), tt.wantOut)
			}
			assert.Equal(t, tt.wantCopied, ta.copied)
		})
	}
}

func TestGet_InvalidID(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)

	err := ta.app.Run(context.Background(), []string{"get", "not-a-uuid"})

	assert.ErrorIs(t, err, ErrInvalidEntryID)
}

func TestUpdate_SendsOnlyGivenFlags(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)

	empty, username := "", "alice2"
	ta.api.EXPECT().
		UpdateEntry(gomock.Any(), testEntryID, models.UpdateEntryRequest{Username: &username, SiteURL: &empty}).
		Return(sampleEntry(), nil)

	err := ta.app.Run(context.Background(), []string{"update", testEntryID.String(), "-username", "alice2", "-url="})

	require.NoError(t, err)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)

	err := ta.app.Run(context.Background(), []string{"update", testEntryID.String()})

	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestDelete_NotFound(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)
	ta.api.EXPECT().DeleteEntry(gomock.Any(), testEntryID).Return(adapter.ErrNotFound)

	err := ta.app.Run(context.Background(), []string{"delete", testEntryID.String()})

	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

// ── server ───────────────────────────────────────────────────────────────────

func TestHealth_PrintsStatusEvenWhenDown(t *testing.T) {
	ta := newTestApp(t, "")
	ta.api.EXPECT().Health(gomock.Any()).
		Return(models.HealthResponse{Status: "unavailable", Database: "unreachable"}, adapter.ErrServiceUnavailable)

	err := ta.app.Run(context.Background(), []string{"health"})

	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)
	assert.Contains(t, ta.out.String(), "database: unreachable")
}

// ── token store ──────────────────────────────────────────────────────────────

func TestTokenStore_OwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, store.Save("new-token\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

// ── whoami ───────────────────────────────────────────────────────────────────

func TestWhoami(t *testing.T) {
	ta := newTestApp(t, "")
	ta.loggedIn(t)

	expires := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserID:           uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	ta.api.EXPECT().Profile(gomock.Any()).Return(models.UserResponse{
		UserID:   uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	}, nil)
	ta.api.EXPECT().Token().Return(signed)

	require.NoError(t, ta.app.Run(context.Background(), []string{"whoami"}))

	assert.Contains(t, ta.out.String(), "alice@example.com")
	assert.Contains(t, ta.out.String(), "session expires")
	assert.Contains(t, ta.out.String(), expires.Local().Format(time.DateTime))
}
