package interfaces

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// Backend provides byte and text access to one storage medium. This is the
// minimal contract every backend must satisfy; extended capabilities (writes,
// listing, local materialization) are modeled as the optional interfaces
// below and detected by type assertion.
type Backend interface {
	// Get reads the whole object at filepath as bytes.
	// Returns ErrNotFound if the resource does not exist.
	Get(ctx context.Context, filepath string) ([]byte, error)

	// GetText reads the whole object at filepath as text. An empty encoding
	// means UTF-8. Returns ErrDecode if the bytes are not valid in the
	// requested encoding.
	GetText(ctx context.Context, filepath, encoding string) (string, error)

	// Name returns identifier for logging and registry bookkeeping.
	Name() string

	// AllowSymlink reports whether paths served by this backend may resolve
	// through symbolic links. Only meaningful for disk-like backends.
	AllowSymlink() bool
}

// Writer is implemented by backends that support writes.
// Put must create missing parent directories (or the backend equivalent)
// before writing; the call is idempotent with respect to those parents.
type Writer interface {
	Put(ctx context.Context, data []byte, filepath string) error
	PutText(ctx context.Context, text, filepath, encoding string) error
}

// Remover is implemented by backends that support object removal.
type Remover interface {
	Remove(ctx context.Context, filepath string) error
}

// Stater is implemented by backends that can answer existence queries.
type Stater interface {
	Exists(ctx context.Context, filepath string) (bool, error)
	IsDir(ctx context.Context, filepath string) (bool, error)
	IsFile(ctx context.Context, filepath string) (bool, error)
}

// PathJoiner is implemented by backends with a native path syntax.
type PathJoiner interface {
	JoinPath(elem ...string) string
}

// LocalPathProvider is implemented by backends that can materialize an object
// as a local filesystem path for the duration of fn. Implementations must
// release any temporary copy when fn returns, no matter how it returns.
type LocalPathProvider interface {
	WithLocalPath(ctx context.Context, filepath string, fn func(localPath string) error) error
}

// Lister is implemented by backends that can enumerate a directory.
type Lister interface {
	// ListDirOrFile scans dirPath and produces paths relative to it, in
	// arbitrary order. The sequence is lazy and should be consumed once.
	ListDirOrFile(ctx context.Context, dirPath string, opts ListOptions) (iter.Seq2[string, error], error)
}

// ListOptions controls directory enumeration.
//
// Suffix restricts listed files to those ending with the given suffix and
// must be nil, a string, or a []string. Suffix cannot be combined with
// ListDir. Entries whose name starts with "." are always skipped. When
// Recursive is set, directories are descended into even if ListDir is false.
type ListOptions struct {
	ListDir   bool
	ListFile  bool
	Suffix    any
	Recursive bool
}

// Suffixes validates and normalizes the Suffix field.
func (o ListOptions) Suffixes() ([]string, error) {
	if o.Suffix == nil {
		return nil, nil
	}
	if o.ListDir {
		return nil, fmt.Errorf("%w: suffix cannot be used when listing directories", ErrInvalidArgument)
	}
	switch s := o.Suffix.(type) {
	case string:
		return []string{s}, nil
	case []string:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: suffix must be a string or a list of strings, got %T", ErrInvalidArgument, o.Suffix)
	}
}

// MatchSuffix reports whether name ends with any of the suffixes. An empty
// suffix set matches everything.
func MatchSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
