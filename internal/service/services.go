package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/keys"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/token"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	AppInfoService AppInfoService
}

// NewServices builds the cipher engine and the token service from keyRing
// and wires every service with its validation wrapper.
func NewServices(storages *store.Storages, keyRing *keys.KeyRing, cfg config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	cipher, err := crypto.NewCBCEngine(keyRing.EncryptionKey())
	if err != nil {
		return nil, fmt.Errorf("error creating cipher engine: %w", err)
	}

	tokens, err := token.NewService(keyRing.SigningKey(), cfg.App.TokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, storages.DB, logger)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()

	return &Services{
		AuthService: NewAuthValidationService().Wrap(
			NewAuthService(storages.UserRepository, tokens, ids, cfg.App, m, logger),
		),
		VaultService: NewVaultValidationService().Wrap(
			NewVaultService(storages.VaultRepository, cipher, ids, m, logger),
		),
		AppInfoService: appInfo,
	}, nil
}
