// Package storage provides uniform byte and text access across
// heterogeneous storage backends behind one client API.
//
// A Client loads or stores whole objects regardless of whether the data
// lives on local disk, behind an HTTP(S) URL, in a distributed memcached
// cluster, in an embedded bbolt store, in S3-compatible object storage, on
// an IPFS node, or in a HashiCorp Vault KV engine.
//
// # Backend Resolution
//
// Clients are obtained from a Registry, either by logical backend name or by
// the scheme prefix of a path:
//
//	client, err := storage.Resolve("boltdb", "", interfaces.Config{"storePath": "/data/store.db"})
//	client, err := storage.InferFromURI("https://host/object.json", nil)
//
// Paths without "://" are treated as local filesystem paths and resolve to
// the disk backend. When both a backend name and a prefix are supplied, the
// name wins.
//
// # Client Caching
//
// The registry caches clients by the deterministic key of their full
// configuration (name, prefix, sorted config entries). Two resolutions with
// an identical configuration return the same *Client, so lazily connected
// backends establish their connection once per configuration rather than
// once per call. The cache is guarded together with the registrations by a
// single mutex and never evicts, except when a forced re-registration
// replaces a backend type.
//
// # Capabilities
//
// Every backend can Get and GetText. Writes, removal, stat queries, listing
// and scoped local materialization are optional capabilities; invoking one
// on a backend that lacks it returns interfaces.ErrUnsupported. There is no
// fallback between backends: a failed operation surfaces immediately.
//
// # Registering Backends
//
//	storage.Register("mybackend", &storage.Definition{New: newMyBackend},
//	    storage.WithPrefixes("my", "mys"))
//
// Overriding an existing registration requires storage.WithForce and evicts
// the cached clients built from the replaced definition.
package storage
