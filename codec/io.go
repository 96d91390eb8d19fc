package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LCF-xybq/file-handler/interfaces"
	"github.com/LCF-xybq/file-handler/storage"
)

// options collects the optional Load/Dump arguments.
type options struct {
	format   string
	backend  string
	cfg      interfaces.Config
	registry *storage.Registry
}

// Option configures a Load or Dump call.
type Option func(*options)

// WithFormat forces the format token instead of inferring it from the path
// extension.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithBackend selects the storage backend by logical name, taking precedence
// over the path's URI prefix.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

// WithConfig passes backend construction configuration.
func WithConfig(cfg interfaces.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithRegistry resolves clients from the given registry instead of the
// process-wide default.
func WithRegistry(r *storage.Registry) Option {
	return func(o *options) { o.registry = r }
}

// Load reads a structured object from source, which is either a path string
// or an io.Reader.
//
// For a path, the format is inferred from the extension unless WithFormat is
// given, a storage client is resolved from the path's URI prefix (or the
// WithBackend name), and the content is transported as text or bytes
// depending on the handler. A reader source is decoded directly and needs no
// backend resolution.
func Load(ctx context.Context, source any, opts ...Option) (any, error) {
	o := collect(opts)

	switch src := source.(type) {
	case string:
		handler, err := handlerForPath(src, o.format)
		if err != nil {
			return nil, err
		}

		client, err := o.resolveClient(src)
		if err != nil {
			return nil, err
		}

		var r io.Reader
		if handler.StrLike() {
			text, err := client.GetText(ctx, src, "")
			if err != nil {
				return nil, err
			}
			r = strings.NewReader(text)
		} else {
			data, err := client.Get(ctx, src)
			if err != nil {
				return nil, err
			}
			r = bytes.NewReader(data)
		}
		return handler.LoadFrom(r)

	case io.Reader:
		handler, ok := HandlerFor(o.format)
		if !ok {
			return nil, fmt.Errorf("%w: %q", interfaces.ErrUnsupportedFormat, o.format)
		}
		return handler.LoadFrom(src)

	default:
		return nil, fmt.Errorf("%w: source must be a path string or an io.Reader, got %T", interfaces.ErrInvalidArgument, source)
	}
}

// Dump writes a structured object to target, which is a path string, an
// io.Writer, or nil.
//
// With a nil target the format must be given via WithFormat and the encoded
// document is returned as a string. With a path target the object is encoded
// in memory and handed to the resolved client's Put or PutText. A writer
// target is encoded into directly.
func Dump(ctx context.Context, obj, target any, opts ...Option) (string, error) {
	o := collect(opts)

	switch dst := target.(type) {
	case nil:
		if o.format == "" {
			return "", fmt.Errorf("%w: a format is required when no target is given", interfaces.ErrMissingFormat)
		}
		handler, ok := HandlerFor(o.format)
		if !ok {
			return "", fmt.Errorf("%w: %q", interfaces.ErrUnsupportedFormat, o.format)
		}
		return handler.DumpString(obj)

	case string:
		handler, err := handlerForPath(dst, o.format)
		if err != nil {
			return "", err
		}

		client, err := o.resolveClient(dst)
		if err != nil {
			return "", err
		}

		if handler.StrLike() {
			text, err := handler.DumpString(obj)
			if err != nil {
				return "", err
			}
			return "", client.PutText(ctx, text, dst, "")
		}
		var buf bytes.Buffer
		if err := handler.DumpTo(obj, &buf); err != nil {
			return "", err
		}
		return "", client.Put(ctx, buf.Bytes(), dst)

	case io.Writer:
		handler, ok := HandlerFor(o.format)
		if !ok {
			return "", fmt.Errorf("%w: %q", interfaces.ErrUnsupportedFormat, o.format)
		}
		return "", handler.DumpTo(obj, dst)

	default:
		return "", fmt.Errorf("%w: target must be a path string, an io.Writer, or nil, got %T", interfaces.ErrInvalidArgument, target)
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = storage.Default
	}
	return o
}

// resolveClient picks a storage client for path: the explicit backend name
// wins, otherwise the client is inferred from the path's URI prefix.
func (o options) resolveClient(path string) (*storage.Client, error) {
	if o.backend != "" {
		return o.registry.Resolve(o.backend, "", o.cfg)
	}
	return o.registry.InferFromURI(path, o.cfg)
}

// handlerForPath resolves the handler for a path, inferring the format from
// the extension when explicit is empty.
func handlerForPath(path, explicit string) (Handler, error) {
	format := explicit
	if format == "" {
		if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
			format = path[idx+1:]
		}
	}
	handler, ok := HandlerFor(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnsupportedFormat, format)
	}
	return handler, nil
}
