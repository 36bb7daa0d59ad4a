// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	testUserID  = uuid.MustParse("018f0000-0000-7000-8000-0000000000aa")
	testEntryID = uuid.MustParse("018f0000-0000-7000-8000-0000000000e1")
)

// newTestClient creates an httpVaultClient pointed at the test server.
func newTestClient(t *testing.T, serverURL string) *httpVaultClient {
	t.Helper()

	c, err := NewHTTPVaultClient(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	hc := c.(*httpVaultClient)
	hc.client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)
	return hc
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "127.0.0.1:8080", want: "http://127.0.0.1:8080"},
		{raw: "https://vault.example.com/", want: "https://vault.example.com"},
		{raw: "  ", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── auth ─────────────────────────────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Authorization", "Bearer issued.jwt.token")
		writeJSON(t, w, http.StatusCreated, models.AuthResponse{
			Token: "issued.jwt.token",
			User:  models.UserResponse{UserID: testUserID, Username: "alice", Email: "alice@example.com"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse"})

	require.NoError(t, err)
	assert.Equal(t, "issued.jwt.token", got.Token)
	assert.Equal(t, testUserID, got.User.UserID)
	assert.Equal(t, "issued.jwt.token", c.Token())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"bad credentials", http.StatusUnauthorized, "invalid credentials", ErrUnauthorized},
		{"validation", http.StatusBadRequest, "invalid email", ErrBadRequest},
		{"rate limited", http.StatusTooManyRequests, "too many requests", ErrTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "x"})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.body)
			assert.Empty(t, c.Token())
		})
	}
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.AuthResponse{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "x"})

	assert.Error(t, err)
	assert.Empty(t, c.Token())
}

// ── entries ──────────────────────────────────────────────────────────────────

func TestAuthenticatedCalls_RequireToken(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")

	_, err := c.ListEntries(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	err = c.DeleteEntry(context.Background(), testEntryID)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCreateEntry_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/passwords", r.URL.Path)

		var req models.CreateEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		writeJSON(t, w, http.StatusCreated, models.EntryResponse{
			ID:       testEntryID,
			SiteName: req.SiteName,
			Username: req.Username,
			Password: req.Password,
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken(" tok ")

	got, err := c.CreateEntry(context.Background(), models.CreateEntryRequest{SiteName: "GitHub", Username: "alice", Password: "hunter2"})

	require.NoError(t, err)
	assert.Equal(t, testEntryID, got.ID)
	assert.Equal(t, "hunter2", got.Password)
}

func TestListEntries_ParsesUndecryptableHeader(t *testing.T) {
	skipped := uuid.MustParse("018f0000-0000-7000-8000-0000000000e2")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(UndecryptableHeader, skipped.String()+",garbage")
		writeJSON(t, w, http.StatusOK, []models.EntryResponse{{ID: testEntryID, SiteName: "GitHub"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	got, err := c.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, testEntryID, got.Entries[0].ID)
	assert.Equal(t, []uuid.UUID{skipped}, got.Undecryptable)
}

func TestGetEntry_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/passwords/"+testEntryID.String(), r.URL.Path)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	_, err := c.GetEntry(context.Background(), testEntryID)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEntry_SendsOnlyProvidedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{"username": "alice2"}, raw)

		writeJSON(t, w, http.StatusOK, models.EntryResponse{ID: testEntryID, Username: "alice2"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")
	username := "alice2"

	got, err := c.UpdateEntry(context.Background(), testEntryID, models.UpdateEntryRequest{Username: &username})

	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
}

func TestDeleteEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "Password deleted successfully"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	assert.NoError(t, c.DeleteEntry(context.Background(), testEntryID))
}

// ── version / health ─────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("v1.4.0"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", got)
}

func TestHealth_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable", Database: "unreachable"})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Health(context.Background())

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, "unreachable", got.Database)
}
