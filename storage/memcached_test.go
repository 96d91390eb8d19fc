package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LCF-xybq/file-handler/interfaces"
)

func writeMemcachedConfigs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	serverList := filepath.Join(dir, "servers.conf")
	require.NoError(t, os.WriteFile(serverList, []byte("# test cluster\n127.0.0.1:11211\n\n127.0.0.1:11212\n"), 0644))

	clientConfig := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(clientConfig, []byte("timeout: 250ms\nmaxIdleConns: 4\n"), 0644))

	return serverList, clientConfig
}

func TestMemcachedBackend_ConstructionRequiresConfigs(t *testing.T) {
	serverList, clientConfig := writeMemcachedConfigs(t)

	tests := []struct {
		name string
		cfg  interfaces.Config
	}{
		{"no configuration", nil},
		{"missing client config", interfaces.Config{"serverListConfigPath": serverList}},
		{"missing server list", interfaces.Config{"clientConfigPath": clientConfig}},
		{
			"absent server list file",
			interfaces.Config{
				"serverListConfigPath": filepath.Join(t.TempDir(), "nope.conf"),
				"clientConfigPath":     clientConfig,
			},
		},
		{
			"absent extra load path",
			interfaces.Config{
				"serverListConfigPath": serverList,
				"clientConfigPath":     clientConfig,
				"extraLoadPath":        filepath.Join(t.TempDir(), "nope.conf"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMemcachedBackend(discardLogger(), tt.cfg)
			assert.ErrorIs(t, err, interfaces.ErrDependencyMissing,
				"configuration problems must surface at construction, not first use")
		})
	}
}

func TestMemcachedBackend_ConstructionDoesNotConnect(t *testing.T) {
	serverList, clientConfig := writeMemcachedConfigs(t)

	// The listed servers do not exist; construction must still succeed
	// because the connection is only established on the first Get.
	backend, err := NewMemcachedBackend(discardLogger(), interfaces.Config{
		"serverListConfigPath": serverList,
		"clientConfigPath":     clientConfig,
	})
	require.NoError(t, err)
	assert.Equal(t, "memcached", backend.Name())
	assert.Len(t, backend.servers, 2)
	assert.Equal(t, "250ms", backend.clientConfig.Timeout)
	assert.Equal(t, 4, backend.clientConfig.MaxIdleConns)
}

func TestMemcachedBackend_ExtraLoadPathAppendsServers(t *testing.T) {
	serverList, clientConfig := writeMemcachedConfigs(t)

	extra := filepath.Join(t.TempDir(), "extra.conf")
	require.NoError(t, os.WriteFile(extra, []byte("127.0.0.1:11213\n"), 0644))

	backend, err := NewMemcachedBackend(discardLogger(), interfaces.Config{
		"serverListConfigPath": serverList,
		"clientConfigPath":     clientConfig,
		"extraLoadPath":        extra,
	})
	require.NoError(t, err)
	assert.Len(t, backend.servers, 3)
}

func TestMemcachedBackend_GetTextUnsupported(t *testing.T) {
	serverList, clientConfig := writeMemcachedConfigs(t)

	backend, err := NewMemcachedBackend(discardLogger(), interfaces.Config{
		"serverListConfigPath": serverList,
		"clientConfigPath":     clientConfig,
	})
	require.NoError(t, err)

	_, err = backend.GetText(context.Background(), "key", "")
	assert.ErrorIs(t, err, interfaces.ErrUnsupported)
}

func TestMemcachedBackend_IsReadOnly(t *testing.T) {
	serverList, clientConfig := writeMemcachedConfigs(t)

	backend, err := NewMemcachedBackend(discardLogger(), interfaces.Config{
		"serverListConfigPath": serverList,
		"clientConfigPath":     clientConfig,
	})
	require.NoError(t, err)

	var b interfaces.Backend = backend
	_, writable := b.(interfaces.Writer)
	assert.False(t, writable)
}

func TestReadServerList_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.conf")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0644))

	_, err := readServerList(path)
	assert.Error(t, err)
}
