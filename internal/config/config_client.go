package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientConfig is the configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the server address and request timeout.
	Adapter Adapter
	// TokenFile is where the last issued token is persisted.
	TokenFile string
}

// GetClientConfig builds a client config from environment variables and the
// optional JSON file. Command-line flags belong to the client's own
// subcommands and are parsed there.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder(nil).
		withEnv().
		withJSON().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg.Adapter.HTTPAddress, cfg.Adapter.RequestTimeout, cfg.Client.TokenFile)
}

// NewClientConfig validates explicit client settings, defaulting the token
// file to ~/.go-pass-vault/token.
func NewClientConfig(address string, timeout time.Duration, tokenFile string) (*ClientConfig, error) {
	if tokenFile == "" {
		tokenFile = defaultTokenFile()
	}

	clientCfg := &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: timeout,
		},
		TokenFile: tokenFile,
	}

	return clientCfg, clientCfg.validate()
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".go-pass-vault-token"
	}
	return filepath.Join(home, ".go-pass-vault", "token")
}
