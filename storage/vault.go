package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// VaultBackend implements a read-only storage backend over a HashiCorp Vault
// KV v2 secret engine. Paths use the form vault://mount/key/path and resolve
// to the "content" field of the stored secret.
type VaultBackend struct {
	client *api.Client
	log    *slog.Logger
}

// NewVaultBackend creates a Vault storage backend from a flat configuration:
//
//   - address: Vault server address (required)
//   - token: Vault token for authentication
func NewVaultBackend(log *slog.Logger, cfg interfaces.Config) (*VaultBackend, error) {
	address := cfg.String("address", "")
	if address == "" {
		return nil, fmt.Errorf("%w: vault backend requires address", interfaces.ErrDependencyMissing)
	}

	vaultCfg := api.DefaultConfig()
	vaultCfg.Address = address
	vaultCfg.Timeout = cfg.Duration("timeout", 30*time.Second)

	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if token := cfg.String("token", ""); token != "" {
		client.SetToken(token)
	}

	return &VaultBackend{
		client: client,
		log:    log,
	}, nil
}

// Name returns a unique identifier for this storage backend.
func (b *VaultBackend) Name() string { return "vault" }

// AllowSymlink reports that symlinks are not meaningful for Vault secrets.
func (b *VaultBackend) AllowSymlink() bool { return false }

// Get retrieves the secret content at a vault://mount/key path.
// Returns ErrNotFound if no secret exists at that path.
func (b *VaultBackend) Get(ctx context.Context, path string) ([]byte, error) {
	mount, key, err := splitVaultPath(path)
	if err != nil {
		return nil, err
	}

	// KV v2 data path structure.
	secretPath := fmt.Sprintf("%s/data/%s", mount, key)
	secret, err := b.client.Logical().ReadWithContext(ctx, secretPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response for %s", path)
	}
	content, ok := data["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content key not found in Vault data for %s", path)
	}

	b.log.Debug("Fetched content from Vault",
		slog.String("path", secretPath),
		slog.Int("size", len(content)))

	return []byte(content), nil
}

// GetText retrieves the secret content at path as text in the given encoding.
func (b *VaultBackend) GetText(ctx context.Context, path, encoding string) (string, error) {
	data, err := b.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return decodeText(data, encoding)
}

// splitVaultPath splits vault://mount/key/path into mount and key path.
func splitVaultPath(path string) (string, string, error) {
	rest := strings.TrimPrefix(path, "vault://")
	mount, key, ok := strings.Cut(rest, "/")
	if !ok || mount == "" || key == "" {
		return "", "", fmt.Errorf("%w: expected vault://mount/key, got %s", interfaces.ErrInvalidArgument, path)
	}
	return mount, key, nil
}
