package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// DiskBackend implements the full capability set on the local file system.
// Paths may resolve through symbolic links.
type DiskBackend struct {
	log *slog.Logger
}

// NewDiskBackend creates a local file system backend.
func NewDiskBackend(log *slog.Logger) *DiskBackend {
	return &DiskBackend{log: log}
}

// Name returns a unique identifier for this storage backend.
func (b *DiskBackend) Name() string { return "disk" }

// AllowSymlink reports that disk paths may resolve through symlinks.
func (b *DiskBackend) AllowSymlink() bool { return true }

// Get reads the whole file at filepath.
// Returns ErrNotFound if the file does not exist.
func (b *DiskBackend) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	b.log.Debug("Fetched content from disk",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return data, nil
}

// GetText reads the whole file at filepath as text in the given encoding.
func (b *DiskBackend) GetText(ctx context.Context, path, encoding string) (string, error) {
	data, err := b.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return decodeText(data, encoding)
}

// Put writes data to filepath, creating missing parent directories first.
func (b *DiskBackend) Put(ctx context.Context, data []byte, path string) error {
	if err := mkdirOrExist(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	b.log.Debug("Stored content on disk",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return nil
}

// PutText writes text to filepath in the given encoding, creating missing
// parent directories first.
func (b *DiskBackend) PutText(ctx context.Context, text, path, encoding string) error {
	data, err := encodeText(text, encoding)
	if err != nil {
		return err
	}
	return b.Put(ctx, data, path)
}

// Remove deletes the file at filepath.
func (b *DiskBackend) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Exists reports whether filepath exists.
func (b *DiskBackend) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsDir reports whether filepath is a directory.
func (b *DiskBackend) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile reports whether filepath is a regular file.
func (b *DiskBackend) IsFile(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// JoinPath joins path elements with the platform separator.
func (b *DiskBackend) JoinPath(elem ...string) string {
	return filepath.Join(elem...)
}

// WithLocalPath invokes fn with the path itself: disk content is already
// local, so there is nothing to materialize or clean up.
func (b *DiskBackend) WithLocalPath(ctx context.Context, path string, fn func(localPath string) error) error {
	return fn(path)
}

// ListDirOrFile scans dirPath and produces entries relative to it, in
// arbitrary order. Hidden entries are always skipped; with opts.Recursive
// directories are descended into even when they are not listed themselves.
func (b *DiskBackend) ListDirOrFile(ctx context.Context, dirPath string, opts interfaces.ListOptions) (iter.Seq2[string, error], error) {
	suffixes, err := opts.Suffixes()
	if err != nil {
		return nil, err
	}

	seq := func(yield func(string, error) bool) {
		b.walkDir(dirPath, dirPath, opts, suffixes, yield)
	}
	return seq, nil
}

// walkDir reports false when iteration was stopped by the consumer.
func (b *DiskBackend) walkDir(root, dir string, opts interfaces.ListOptions, suffixes []string, yield func(string, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", interfaces.ErrNotFound, dir)
		}
		return yield("", err)
	}

	for _, entry := range entries {
		if entry.Name()[0] == '.' {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return yield("", err)
		}

		if entry.IsDir() {
			if opts.ListDir {
				if !yield(rel, nil) {
					return false
				}
			}
			if opts.Recursive {
				if !b.walkDir(root, full, opts, suffixes, yield) {
					return false
				}
			}
			continue
		}

		if opts.ListFile && interfaces.MatchSuffix(rel, suffixes) {
			if !yield(rel, nil) {
				return false
			}
		}
	}
	return true
}

// mkdirOrExist creates dir and all missing parents. It succeeds if the
// directory already exists.
func mkdirOrExist(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
