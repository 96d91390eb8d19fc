package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// IPFSBackend implements a read-only storage backend over an IPFS node.
// Paths use the form ipfs://CID[/sub/path].
type IPFSBackend struct {
	shell *shell.Shell
	log   *slog.Logger
}

// NewIPFSBackend creates an IPFS storage backend from a flat configuration:
//
//   - apiURL: IPFS API address (default 127.0.0.1:5001)
func NewIPFSBackend(log *slog.Logger, cfg interfaces.Config) (*IPFSBackend, error) {
	apiURL := cfg.String("apiURL", "127.0.0.1:5001")
	return &IPFSBackend{
		shell: shell.NewShell(apiURL),
		log:   log,
	}, nil
}

// Name returns a unique identifier for this storage backend.
func (b *IPFSBackend) Name() string { return "ipfs" }

// AllowSymlink reports that symlinks are not meaningful for IPFS content.
func (b *IPFSBackend) AllowSymlink() bool { return false }

// Get retrieves content by its IPFS path. Returns ErrBackendUnavailable when
// the node is not reachable and ErrNotFound when the content does not exist.
func (b *IPFSBackend) Get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()

	if !b.shell.IsUp() {
		b.log.Warn("IPFS node unavailable", slog.String("path", path))
		return nil, interfaces.ErrBackendUnavailable
	}

	reader, err := b.shell.Cat(ipfsPath(path))
	if err != nil {
		if strings.Contains(err.Error(), "no link named") {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to fetch data from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data from IPFS: %w", err)
	}

	b.log.Debug("Fetched content from IPFS",
		slog.String("path", path),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// GetText retrieves content by its IPFS path as text in the given encoding.
func (b *IPFSBackend) GetText(ctx context.Context, path, encoding string) (string, error) {
	data, err := b.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return decodeText(data, encoding)
}

// ipfsPath converts ipfs://CID/sub into the node path /ipfs/CID/sub.
func ipfsPath(path string) string {
	rest := strings.TrimPrefix(path, "ipfs://")
	return "/ipfs/" + strings.TrimPrefix(rest, "/")
}
