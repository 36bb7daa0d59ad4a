// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

func newCORSRouter(t *testing.T, origins []string) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").AnyTimes()

	services := &service.Services{
		AuthService:    mock.NewMockAuthService(ctrl),
		VaultService:   mock.NewMockVaultService(ctrl),
		AppInfoService: appInfo,
	}
	return NewHandler(services, nil, nil, config.Server{CORSAllowedOrigins: origins}, logger.Nop()).Init()
}

func preflight(router http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/passwords", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCORS_PreflightAnyOrigin(t *testing.T) {
	router := newCORSRouter(t, nil)

	rr := preflight(router, "https://app.example")

	assert.Less(t, rr.Code, 300, "preflight never reaches auth")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ActualRequestExposesHeaders(t *testing.T) {
	router := newCORSRouter(t, []string{"https://app.example"})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Origin", "https://app.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
	exposed := rr.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, "Authorization")
	assert.Contains(t, exposed, UndecryptableHeader)
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := newCORSRouter(t, []string{"https://app.example"})

	rr := preflight(router, "https://evil.example")

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
