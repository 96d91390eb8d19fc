// Package interfaces defines the contracts shared across the file-handler
// system: the storage backend capability interfaces, the flat configuration
// object and its deterministic cache key, URI prefix parsing, and the error
// taxonomy surfaced to callers.
//
// # Backend Capabilities
//
// Backend is the minimal required contract (Get, GetText). Extended
// capabilities are optional interfaces detected by type assertion:
//
//   - Writer: Put, PutText
//   - Remover: Remove
//   - Stater: Exists, IsDir, IsFile
//   - PathJoiner: JoinPath
//   - LocalPathProvider: WithLocalPath (scoped local materialization)
//   - Lister: ListDirOrFile
//   - io.Closer: connection release on client teardown
//
// A client wrapping a backend answers ErrUnsupported for capabilities the
// backend does not implement.
//
// # Errors
//
// All errors are sentinel values suitable for errors.Is. Failures propagate
// to the caller immediately: there is no retry and no fallback between
// backends.
package interfaces
