package storage

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// Definition describes how to build instances of one backend type. The same
// definition may be registered under several names or prefixes; clients
// remember the definition that built them so that a forced override can
// evict exactly the clients of the replaced type.
type Definition struct {
	// New constructs a backend from a flat configuration.
	New func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error)
}

// Built-in backend definitions, registered into every new Registry.
var (
	DiskDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewDiskBackend(log), nil
		},
	}
	HTTPDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewHTTPBackend(log), nil
		},
	}
	MemcachedDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewMemcachedBackend(log, cfg)
		},
	}
	BoltDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewBoltBackend(log, cfg)
		},
	}
	S3Definition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewS3Backend(log, cfg)
		},
	}
	IPFSDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewIPFSBackend(log, cfg)
		},
	}
	VaultDefinition = &Definition{
		New: func(log *slog.Logger, cfg interfaces.Config) (interfaces.Backend, error) {
			return NewVaultBackend(log, cfg)
		},
	}
)

// cacheEntry is a cached client plus the definition that built it.
type cacheEntry struct {
	client *Client
	def    *Definition
}

// Registry maps logical backend names and URI prefixes to backend
// definitions and caches client instances by configuration. One mutex guards
// both mappings and the cache so that concurrent resolutions of the same
// configuration yield the same client object.
//
// The client cache only grows; entries are evicted solely when a forced
// re-registration replaces the definition they were built from.
type Registry struct {
	log *slog.Logger

	mu               sync.Mutex
	backendsByName   map[string]*Definition
	backendsByPrefix map[string]*Definition
	clients          map[string]*cacheEntry
}

// NewRegistry creates a registry pre-seeded with the built-in backends:
// names disk, http, memcached, boltdb, s3, ipfs and vault, plus prefixes
// http, https, s3, ipfs and vault.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log: log,
		backendsByName: map[string]*Definition{
			"disk":      DiskDefinition,
			"http":      HTTPDefinition,
			"memcached": MemcachedDefinition,
			"boltdb":    BoltDefinition,
			"s3":        S3Definition,
			"ipfs":      IPFSDefinition,
			"vault":     VaultDefinition,
		},
		backendsByPrefix: map[string]*Definition{
			"http":  HTTPDefinition,
			"https": HTTPDefinition,
			"s3":    S3Definition,
			"ipfs":  IPFSDefinition,
			"vault": VaultDefinition,
		},
		clients: make(map[string]*cacheEntry),
	}
}

// Resolve returns a client for the requested backend name or URI prefix.
// When both are empty the disk backend is used; when both are given the name
// wins. Clients are cached by (name, prefix, config): repeated calls with an
// identical configuration return the same client object.
func (r *Registry) Resolve(backend, prefix string, cfg interfaces.Config) (*Client, error) {
	if backend == "" && prefix == "" {
		backend = "disk"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var def *Definition
	if backend != "" {
		d, ok := r.backendsByName[backend]
		if !ok {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrUnsupportedBackend, backend)
		}
		def = d
	}
	if prefix != "" {
		d, ok := r.backendsByPrefix[prefix]
		if !ok {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrUnsupportedPrefix, prefix)
		}
		// The explicit backend name takes precedence over the prefix.
		if def == nil {
			def = d
		}
	}

	key := interfaces.Key(backend, prefix, cfg)
	if entry, ok := r.clients[key]; ok {
		return entry.client, nil
	}

	b, err := def.New(r.log, cfg)
	if err != nil {
		return nil, err
	}
	client := NewClient(b)
	r.clients[key] = &cacheEntry{client: client, def: def}

	r.log.Debug("Created storage client",
		slog.String("backend", b.Name()),
		slog.String("configKey", key))

	return client, nil
}

// InferFromURI resolves a client from the scheme prefix of uri. URIs without
// "://" are treated as local paths and resolve to the disk backend.
func (r *Registry) InferFromURI(uri string, cfg interfaces.Config) (*Client, error) {
	prefix, _ := interfaces.ParseURIPrefix(uri)
	return r.Resolve("", prefix, cfg)
}

// registerOptions collects optional Register arguments.
type registerOptions struct {
	force    bool
	prefixes []string
}

// RegisterOption configures a Register call.
type RegisterOption func(*registerOptions)

// WithForce allows overriding an existing name or prefix registration.
func WithForce() RegisterOption {
	return func(o *registerOptions) { o.force = true }
}

// WithPrefixes additionally registers the definition for URI prefixes.
func WithPrefixes(prefixes ...string) RegisterOption {
	return func(o *registerOptions) { o.prefixes = append(o.prefixes, prefixes...) }
}

// Register adds a backend definition under the given name and, optionally,
// under URI prefixes. Registering an existing name or prefix fails with
// ErrAlreadyRegistered unless WithForce is given.
//
// A forced override evicts and closes every cached client that was built
// from the definition previously registered under the overridden name; the
// same rule applies independently per overridden prefix. Note that when one
// definition is registered under several keys, overriding one key evicts the
// clients resolved through the others as well; this mirrors eviction by
// instance type and is kept intentionally.
//
// The call either applies completely or leaves the registry unchanged.
func (r *Registry) Register(name string, def *Definition, opts ...RegisterOption) error {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if name == "" {
		return fmt.Errorf("%w: backend name must not be empty", interfaces.ErrInvalidArgument)
	}
	if def == nil || def.New == nil {
		return fmt.Errorf("%w: definition must provide a constructor", interfaces.ErrInvalidBackend)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every key first so the registry is never partially updated.
	if _, exists := r.backendsByName[name]; exists && !o.force {
		return fmt.Errorf("%w: backend %s (use force to override)", interfaces.ErrAlreadyRegistered, name)
	}
	for _, prefix := range o.prefixes {
		if _, exists := r.backendsByPrefix[prefix]; exists && !o.force {
			return fmt.Errorf("%w: prefix %s (use force to override)", interfaces.ErrAlreadyRegistered, prefix)
		}
	}

	if prev, exists := r.backendsByName[name]; exists {
		r.evictClientsOf(prev)
	}
	r.backendsByName[name] = def

	for _, prefix := range o.prefixes {
		if prev, exists := r.backendsByPrefix[prefix]; exists {
			r.evictClientsOf(prev)
		}
		r.backendsByPrefix[prefix] = def
	}

	return nil
}

// evictClientsOf drops every cached client built from def and releases its
// backend resources. Callers must hold r.mu.
func (r *Registry) evictClientsOf(def *Definition) {
	for key, entry := range r.clients {
		if entry.def != def {
			continue
		}
		delete(r.clients, key)
		if err := entry.client.Close(); err != nil {
			r.log.Warn("Failed to close evicted client",
				slog.String("configKey", key), "err", err)
		}
	}
}

// Default is the process-wide registry used by the package-level helpers and
// by the codec package when no registry is given explicitly.
var Default = NewRegistry(slog.Default())

// Resolve resolves a client from the default registry.
func Resolve(backend, prefix string, cfg interfaces.Config) (*Client, error) {
	return Default.Resolve(backend, prefix, cfg)
}

// InferFromURI resolves a client from the default registry by URI prefix.
func InferFromURI(uri string, cfg interfaces.Config) (*Client, error) {
	return Default.InferFromURI(uri, cfg)
}

// Register registers a backend definition in the default registry.
func Register(name string, def *Definition, opts ...RegisterOption) error {
	return Default.Register(name, def, opts...)
}
