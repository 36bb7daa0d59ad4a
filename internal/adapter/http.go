package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// UndecryptableHeader lists, comma separated, the entries a list response
// skipped because they could not be decrypted.
const UndecryptableHeader = "X-Vault-Undecryptable"

type httpVaultClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPVaultClient constructs the HTTP implementation of [VaultClient].
// The base URL is taken from cfg.HTTPAddress; a bare "host:port" gets the
// http scheme.
//
// Returns an error if cfg.HTTPAddress is empty or is not a valid URL.
func NewHTTPVaultClient(cfg config.Adapter, logger *logger.Logger) (VaultClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpVaultClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpVaultClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpVaultClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs to /api/user/register. The token is read from the
// Authorization response header.
func (h *httpVaultClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/register", req)
}

// Login POSTs to /api/user/login. The token is read from the
// Authorization response header.
func (h *httpVaultClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/login", req)
}

func (h *httpVaultClient) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	authResp.Token = token
	h.logger.Debug().Str("user_id", authResp.User.UserID.String()).Msg("authenticated")

	return authResp, nil
}

func (h *httpVaultClient) Profile(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse
	if err := h.do(ctx, resty.MethodGet, "/api/user/profile", nil, &user); err != nil {
		return models.UserResponse{}, err
	}
	return user, nil
}

func (h *httpVaultClient) CreateEntry(ctx context.Context, req models.CreateEntryRequest) (models.EntryResponse, error) {
	var entry models.EntryResponse
	if err := h.do(ctx, resty.MethodPost, "/api/passwords", req, &entry); err != nil {
		return models.EntryResponse{}, err
	}
	return entry, nil
}

func (h *httpVaultClient) ListEntries(ctx context.Context) (models.EntryList, error) {
	var entries []models.EntryResponse

	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.EntryList{}, err
	}
	resp, err := r.SetResult(&entries).Get("/api/passwords")
	if err != nil {
		return models.EntryList{}, fmt.Errorf("list entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EntryList{}, err
	}

	list := models.EntryList{Entries: entries}
	for _, raw := range strings.Split(resp.Header().Get(UndecryptableHeader), ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn().Str("value", raw).Msg("skipping malformed undecryptable id")
			continue
		}
		list.Undecryptable = append(list.Undecryptable, id)
	}

	return list, nil
}

func (h *httpVaultClient) GetEntry(ctx context.Context, id uuid.UUID) (models.EntryResponse, error) {
	var entry models.EntryResponse
	if err := h.do(ctx, resty.MethodGet, entryPath(id), nil, &entry); err != nil {
		return models.EntryResponse{}, err
	}
	return entry, nil
}

func (h *httpVaultClient) UpdateEntry(ctx context.Context, id uuid.UUID, req models.UpdateEntryRequest) (models.EntryResponse, error) {
	var entry models.EntryResponse
	if err := h.do(ctx, resty.MethodPut, entryPath(id), req, &entry); err != nil {
		return models.EntryResponse{}, err
	}
	return entry, nil
}

func (h *httpVaultClient) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	var msg models.MessageResponse
	return h.do(ctx, resty.MethodDelete, entryPath(id), nil, &msg)
}

func (h *httpVaultClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// Health returns the decoded body for both 200 and 503, so callers can
// show which component is down.
func (h *httpVaultClient) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		SetError(&health).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}

	return health, mapHTTPError(resp)
}

// do sends an authenticated JSON request and decodes a 2xx body into out.
func (h *httpVaultClient) do(ctx context.Context, method, path string, body, out any) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := r.SetResult(out).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpVaultClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

func entryPath(id uuid.UUID) string {
	return "/api/passwords/" + id.String()
}
