package storage

import (
	"context"
	"fmt"
	"io"
	"iter"
	"path"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// Client is a facade wrapping exactly one storage backend. The backend never
// changes after construction. Clients are created and cached by a Registry;
// two resolutions with the same configuration yield the same Client.
//
// Capabilities the backend does not implement answer ErrUnsupported.
type Client struct {
	backend interfaces.Backend
}

// NewClient wraps a backend in a client facade.
func NewClient(backend interfaces.Backend) *Client {
	return &Client{backend: backend}
}

// Backend returns the wrapped backend.
func (c *Client) Backend() interfaces.Backend { return c.backend }

// Name returns the wrapped backend's identifier.
func (c *Client) Name() string { return c.backend.Name() }

// AllowSymlink reports the wrapped backend's symlink policy.
func (c *Client) AllowSymlink() bool { return c.backend.AllowSymlink() }

// Get reads the whole object at filepath as bytes.
func (c *Client) Get(ctx context.Context, filepath string) ([]byte, error) {
	return c.backend.Get(ctx, filepath)
}

// GetText reads the whole object at filepath as text. An empty encoding
// means UTF-8.
func (c *Client) GetText(ctx context.Context, filepath, encoding string) (string, error) {
	return c.backend.GetText(ctx, filepath, encoding)
}

// Put writes data to filepath, creating missing parents where the backend
// has that notion.
func (c *Client) Put(ctx context.Context, data []byte, filepath string) error {
	w, ok := c.backend.(interfaces.Writer)
	if !ok {
		return fmt.Errorf("%w: %s backend is read-only", interfaces.ErrUnsupported, c.Name())
	}
	return w.Put(ctx, data, filepath)
}

// PutText writes text to filepath in the given encoding.
func (c *Client) PutText(ctx context.Context, text, filepath, encoding string) error {
	w, ok := c.backend.(interfaces.Writer)
	if !ok {
		return fmt.Errorf("%w: %s backend is read-only", interfaces.ErrUnsupported, c.Name())
	}
	return w.PutText(ctx, text, filepath, encoding)
}

// Remove deletes the object at filepath.
func (c *Client) Remove(ctx context.Context, filepath string) error {
	r, ok := c.backend.(interfaces.Remover)
	if !ok {
		return fmt.Errorf("%w: %s backend cannot remove", interfaces.ErrUnsupported, c.Name())
	}
	return r.Remove(ctx, filepath)
}

// Exists reports whether filepath exists.
func (c *Client) Exists(ctx context.Context, filepath string) (bool, error) {
	s, ok := c.backend.(interfaces.Stater)
	if !ok {
		return false, fmt.Errorf("%w: %s backend cannot stat", interfaces.ErrUnsupported, c.Name())
	}
	return s.Exists(ctx, filepath)
}

// IsDir reports whether filepath is a directory.
func (c *Client) IsDir(ctx context.Context, filepath string) (bool, error) {
	s, ok := c.backend.(interfaces.Stater)
	if !ok {
		return false, fmt.Errorf("%w: %s backend cannot stat", interfaces.ErrUnsupported, c.Name())
	}
	return s.IsDir(ctx, filepath)
}

// IsFile reports whether filepath is a regular file.
func (c *Client) IsFile(ctx context.Context, filepath string) (bool, error) {
	s, ok := c.backend.(interfaces.Stater)
	if !ok {
		return false, fmt.Errorf("%w: %s backend cannot stat", interfaces.ErrUnsupported, c.Name())
	}
	return s.IsFile(ctx, filepath)
}

// JoinPath joins path elements in the backend's native syntax. Backends
// without one fall back to forward slashes.
func (c *Client) JoinPath(elem ...string) string {
	if j, ok := c.backend.(interfaces.PathJoiner); ok {
		return j.JoinPath(elem...)
	}
	return path.Join(elem...)
}

// WithLocalPath materializes the object at filepath as a local file and
// invokes fn with its path. Any temporary copy is released when fn returns,
// regardless of how it returns.
func (c *Client) WithLocalPath(ctx context.Context, filepath string, fn func(localPath string) error) error {
	p, ok := c.backend.(interfaces.LocalPathProvider)
	if !ok {
		return fmt.Errorf("%w: %s backend cannot provide a local path", interfaces.ErrUnsupported, c.Name())
	}
	return p.WithLocalPath(ctx, filepath, fn)
}

// ListDirOrFile scans dirPath and produces entries relative to it.
func (c *Client) ListDirOrFile(ctx context.Context, dirPath string, opts interfaces.ListOptions) (iter.Seq2[string, error], error) {
	l, ok := c.backend.(interfaces.Lister)
	if !ok {
		return nil, fmt.Errorf("%w: %s backend cannot list", interfaces.ErrUnsupported, c.Name())
	}
	return l.ListDirOrFile(ctx, dirPath, opts)
}

// Close releases the backend's connection resources, if it holds any.
func (c *Client) Close() error {
	if closer, ok := c.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
