package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// seedBoltStore creates a store file with one bucket of entries.
func seedBoltStore(t *testing.T, bucket string, entries map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	db, err := bolt.Open(path, 0600, nil)
	require.NoError(t, err)

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		for k, v := range entries {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return path
}

func TestBoltBackend_ConstructionRequiresStoreFile(t *testing.T) {
	_, err := NewBoltBackend(discardLogger(), nil)
	assert.ErrorIs(t, err, interfaces.ErrDependencyMissing)

	_, err = NewBoltBackend(discardLogger(), interfaces.Config{
		"storePath": filepath.Join(t.TempDir(), "missing.db"),
	})
	assert.ErrorIs(t, err, interfaces.ErrDependencyMissing,
		"an absent store must fail at construction, not at first use")
}

func TestBoltBackend_GetRoundTrip(t *testing.T) {
	path := seedBoltStore(t, defaultBoltBucket, map[string][]byte{
		"images/0001.bin": {0xde, 0xad, 0xbe, 0xef},
	})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)
	defer backend.Close()

	got, err := backend.Get(context.Background(), "images/0001.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
}

func TestBoltBackend_GetMissingKey(t *testing.T) {
	path := seedBoltStore(t, defaultBoltBucket, map[string][]byte{"present": []byte("x")})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestBoltBackend_CustomBucket(t *testing.T) {
	path := seedBoltStore(t, "custom", map[string][]byte{"k": []byte("v")})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{
		"storePath": path,
		"bucket":    "custom",
	})
	require.NoError(t, err)
	defer backend.Close()

	got, err := backend.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestBoltBackend_MissingBucketIsNotFound(t *testing.T) {
	path := seedBoltStore(t, "other", map[string][]byte{"k": []byte("v")})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(context.Background(), "k")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestBoltBackend_CloseReleasesHandle(t *testing.T) {
	path := seedBoltStore(t, defaultBoltBucket, map[string][]byte{"k": []byte("v")})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)

	_, err = backend.Get(context.Background(), "k")
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.NoError(t, backend.Close(), "double close is safe")

	_, err = backend.Get(context.Background(), "k")
	assert.ErrorIs(t, err, interfaces.ErrBackendUnavailable)
}

func TestBoltBackend_CloseBeforeFirstGet(t *testing.T) {
	path := seedBoltStore(t, defaultBoltBucket, map[string][]byte{"k": []byte("v")})

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)

	assert.NoError(t, backend.Close())

	_, err = backend.Get(context.Background(), "k")
	assert.ErrorIs(t, err, interfaces.ErrBackendUnavailable)
}

func TestBoltBackend_GetTextUnsupported(t *testing.T) {
	path := seedBoltStore(t, defaultBoltBucket, nil)

	backend, err := NewBoltBackend(discardLogger(), interfaces.Config{"storePath": path})
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.GetText(context.Background(), "k", "")
	assert.ErrorIs(t, err, interfaces.ErrUnsupported)
}
