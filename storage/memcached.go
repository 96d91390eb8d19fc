package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"gopkg.in/yaml.v3"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// memcachedClientConfig is the schema of the client configuration file.
type memcachedClientConfig struct {
	Timeout      string `yaml:"timeout"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
}

// MemcachedBackend implements a read-only storage backend over a distributed
// memcached cluster. The file path is used as the cache key.
//
// Both configuration files must be readable when the backend is constructed;
// the connection to the cluster itself is only established on the first Get.
type MemcachedBackend struct {
	servers      []string
	clientConfig memcachedClientConfig
	log          *slog.Logger

	connectOnce sync.Once
	client      *memcache.Client
}

// NewMemcachedBackend creates a memcached backend from a flat configuration:
//
//   - serverListConfigPath: file with one host:port per line (required)
//   - clientConfigPath: YAML file with client settings (required)
//   - extraLoadPath: additional server list file (optional)
//
// Returns ErrDependencyMissing when a required configuration file is absent
// or unusable. Data absence is reported later, per request, as ErrNotFound.
func NewMemcachedBackend(log *slog.Logger, cfg interfaces.Config) (*MemcachedBackend, error) {
	serverListPath := cfg.String("serverListConfigPath", "")
	clientConfigPath := cfg.String("clientConfigPath", "")
	if serverListPath == "" || clientConfigPath == "" {
		return nil, fmt.Errorf("%w: memcached backend requires serverListConfigPath and clientConfigPath", interfaces.ErrDependencyMissing)
	}

	servers, err := readServerList(serverListPath)
	if err != nil {
		return nil, fmt.Errorf("%w: server list config: %v", interfaces.ErrDependencyMissing, err)
	}

	if extra := cfg.String("extraLoadPath", ""); extra != "" {
		extraServers, err := readServerList(extra)
		if err != nil {
			return nil, fmt.Errorf("%w: extra load path: %v", interfaces.ErrDependencyMissing, err)
		}
		servers = append(servers, extraServers...)
	}

	raw, err := os.ReadFile(clientConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%w: client config: %v", interfaces.ErrDependencyMissing, err)
	}
	var clientConfig memcachedClientConfig
	if err := yaml.Unmarshal(raw, &clientConfig); err != nil {
		return nil, fmt.Errorf("%w: client config: %v", interfaces.ErrDependencyMissing, err)
	}

	return &MemcachedBackend{
		servers:      servers,
		clientConfig: clientConfig,
		log:          log,
	}, nil
}

// Name returns a unique identifier for this storage backend.
func (b *MemcachedBackend) Name() string { return "memcached" }

// AllowSymlink reports that symlinks are not meaningful for cache entries.
func (b *MemcachedBackend) AllowSymlink() bool { return false }

// Get retrieves the value cached under filepath.
// Returns ErrNotFound on a cache miss.
func (b *MemcachedBackend) Get(ctx context.Context, path string) ([]byte, error) {
	b.connectOnce.Do(b.connect)

	item, err := b.client.Get(path)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	b.log.Debug("Fetched content from memcached",
		slog.String("key", path),
		slog.Int("size", len(item.Value)))

	return item.Value, nil
}

// GetText is not supported: cached values are raw byte buffers.
func (b *MemcachedBackend) GetText(ctx context.Context, path, encoding string) (string, error) {
	return "", fmt.Errorf("%w: memcached backend serves bytes only", interfaces.ErrUnsupported)
}

func (b *MemcachedBackend) connect() {
	client := memcache.New(b.servers...)
	if b.clientConfig.Timeout != "" {
		if d, err := time.ParseDuration(b.clientConfig.Timeout); err == nil {
			client.Timeout = d
		}
	}
	if b.clientConfig.MaxIdleConns > 0 {
		client.MaxIdleConns = b.clientConfig.MaxIdleConns
	}
	b.client = client

	b.log.Debug("Connected to memcached cluster",
		slog.Int("servers", len(b.servers)))
}

// readServerList parses a server list file with one host:port per line.
// Blank lines and lines starting with '#' are skipped.
func readServerList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var servers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		servers = append(servers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("no servers listed in %s", path)
	}
	return servers, nil
}
