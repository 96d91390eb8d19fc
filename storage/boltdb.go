package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// defaultBoltBucket holds entries when no bucket is configured.
const defaultBoltBucket = "fileio"

// BoltBackend implements a read-only storage backend over an embedded bbolt
// key-value store. The file path is used as the key within one bucket.
//
// The store file must exist when the backend is constructed; the database
// handle is only opened on the first Get and must be released with Close
// when the owning client is discarded.
type BoltBackend struct {
	storePath string
	bucket    string
	options   *bolt.Options
	log       *slog.Logger

	openOnce sync.Once
	openErr  error
	db       *bolt.DB
}

// NewBoltBackend creates an embedded-store backend from a flat configuration:
//
//   - storePath: database file path (required, must exist)
//   - readOnly: open the store read-only (default true)
//   - lockOnWrite: take an exclusive file lock (default false)
//   - readAheadEnabled: preload internal pages on open (default false)
//   - bucket: bucket holding the entries (default "fileio")
//   - timeout: file lock wait duration
//
// Returns ErrDependencyMissing when the store file is absent, as opposed to
// ErrNotFound which is reported per request for absent keys.
func NewBoltBackend(log *slog.Logger, cfg interfaces.Config) (*BoltBackend, error) {
	storePath := cfg.String("storePath", "")
	if storePath == "" {
		return nil, fmt.Errorf("%w: bolt backend requires storePath", interfaces.ErrDependencyMissing)
	}
	if _, err := os.Stat(storePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: store file %s does not exist", interfaces.ErrDependencyMissing, storePath)
		}
		return nil, fmt.Errorf("%w: store file %s: %v", interfaces.ErrDependencyMissing, storePath, err)
	}

	options := &bolt.Options{
		ReadOnly: cfg.Bool("readOnly", true),
		Timeout:  cfg.Duration("timeout", time.Second),
	}
	if cfg.Bool("readAheadEnabled", false) {
		options.PreLoadFreelist = true
	}
	// An exclusive lock is only taken when writes were asked for explicitly.
	if !cfg.Bool("lockOnWrite", false) {
		options.ReadOnly = true
	}

	return &BoltBackend{
		storePath: storePath,
		bucket:    cfg.String("bucket", defaultBoltBucket),
		options:   options,
		log:       log,
	}, nil
}

// Name returns a unique identifier for this storage backend.
func (b *BoltBackend) Name() string { return "boltdb" }

// AllowSymlink reports that symlinks are not meaningful for store keys.
func (b *BoltBackend) AllowSymlink() bool { return false }

// Get retrieves the value stored under filepath.
// Returns ErrNotFound if the key is absent.
func (b *BoltBackend) Get(ctx context.Context, path string) ([]byte, error) {
	b.openOnce.Do(b.open)
	if b.openErr != nil {
		return nil, b.openErr
	}

	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(b.bucket))
		if bucket == nil {
			return fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		raw := bucket.Get([]byte(path))
		if raw == nil {
			return fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		// The slice is only valid inside the transaction.
		value = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.log.Debug("Fetched content from bolt store",
		slog.String("key", path),
		slog.Int("size", len(value)))

	return value, nil
}

// GetText is not supported: store values are raw byte buffers.
func (b *BoltBackend) GetText(ctx context.Context, path, encoding string) (string, error) {
	return "", fmt.Errorf("%w: bolt backend serves bytes only", interfaces.ErrUnsupported)
}

// Close releases the database handle. Safe to call before the first Get and
// more than once.
func (b *BoltBackend) Close() error {
	// Prevent a later Get from reopening.
	b.openOnce.Do(func() {
		b.openErr = fmt.Errorf("%w: backend closed", interfaces.ErrBackendUnavailable)
	})
	if b.db == nil {
		return nil
	}
	db := b.db
	b.db = nil
	b.openErr = fmt.Errorf("%w: backend closed", interfaces.ErrBackendUnavailable)
	return db.Close()
}

func (b *BoltBackend) open() {
	db, err := bolt.Open(b.storePath, 0600, b.options)
	if err != nil {
		b.openErr = fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
		return
	}
	b.db = db

	b.log.Debug("Opened bolt store",
		slog.String("path", b.storePath),
		slog.Bool("readOnly", b.options.ReadOnly))
}
