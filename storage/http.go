package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// HTTPBackend implements a read-only storage backend over HTTP(S). Each Get
// performs a single synchronous GET and returns the full response body.
type HTTPBackend struct {
	client *http.Client
	log    *slog.Logger
}

// NewHTTPBackend creates a read-only HTTP storage backend.
func NewHTTPBackend(log *slog.Logger) *HTTPBackend {
	return &HTTPBackend{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// Name returns a unique identifier for this storage backend.
func (b *HTTPBackend) Name() string { return "http" }

// AllowSymlink reports that symlinks are not meaningful for HTTP resources.
func (b *HTTPBackend) AllowSymlink() bool { return false }

// Get fetches the full body of the resource at the given URL.
// Returns ErrNotFound for a 404 response.
func (b *HTTPBackend) Get(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidArgument, err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	b.log.Debug("Fetched content over HTTP",
		slog.String("url", url),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// GetText fetches the resource at the given URL as text.
func (b *HTTPBackend) GetText(ctx context.Context, url, encoding string) (string, error) {
	data, err := b.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return decodeText(data, encoding)
}

// WithLocalPath downloads the resource into a uniquely named temporary file
// and invokes fn with its path. The temporary file is removed when fn
// returns, regardless of how it returns.
func (b *HTTPBackend) WithLocalPath(ctx context.Context, url string, fn func(localPath string) error) error {
	data, err := b.Get(ctx, url)
	if err != nil {
		return err
	}

	name := filepath.Join(os.TempDir(), fmt.Sprintf("fileio-%s", uuid.New().String()))
	if err := os.WriteFile(name, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	defer func() {
		if err := os.Remove(name); err != nil {
			b.log.Warn("Failed to remove temporary file",
				slog.String("path", name), "err", err)
		}
	}()

	return fn(name)
}
