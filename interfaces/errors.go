package interfaces

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist in
	// the backend (missing file, cache miss, absent key).
	ErrNotFound = errors.New("resource not found")

	// ErrUnsupported is returned when a backend does not implement the
	// requested capability, e.g. Put on a read-only backend.
	ErrUnsupported = errors.New("operation not supported by backend")

	// ErrInvalidArgument is returned for malformed call parameters, such as
	// a listing suffix that is neither a string nor a list of strings.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedBackend is returned when no backend is registered under
	// the requested name.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrUnsupportedPrefix is returned when no backend is registered for the
	// requested URI prefix.
	ErrUnsupportedPrefix = errors.New("unsupported prefix")

	// ErrUnsupportedFormat is returned when no handler is registered for the
	// requested serialization format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMissingFormat is returned when a format cannot be inferred and none
	// was given explicitly.
	ErrMissingFormat = errors.New("format must be specified")

	// ErrAlreadyRegistered is returned when registering a backend name or
	// prefix that already exists without the force option.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidBackend is returned when a registered backend definition does
	// not satisfy the backend contract.
	ErrInvalidBackend = errors.New("invalid backend definition")

	// ErrDependencyMissing is returned at construction time when an external
	// dependency required by a backend is not available, as opposed to
	// ErrNotFound which concerns the data itself at request time.
	ErrDependencyMissing = errors.New("required dependency missing")

	// ErrBackendUnavailable is returned when a storage backend is not
	// accessible. This could be due to network issues, authentication
	// failures, or service outages.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrDecode is returned when fetched bytes cannot be decoded with the
	// requested text encoding.
	ErrDecode = errors.New("text decoding failed")
)
