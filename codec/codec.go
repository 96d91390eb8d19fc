// Package codec reads and writes structured objects through format-specific
// handlers, resolving a storage client for path sources and targets.
//
// Load and Dump are the entry points. The format is inferred from the path
// extension when not given explicitly; handlers declare whether they operate
// on text or raw bytes, which selects the stream transport used against the
// storage layer.
package codec

import (
	"io"
)

// Handler is a format-specific encode/decode strategy.
// Implementations must be safe for concurrent use.
type Handler interface {
	// LoadFrom decodes one object from r.
	LoadFrom(r io.Reader) (any, error)

	// DumpTo encodes obj into w.
	DumpTo(obj any, w io.Writer) error

	// DumpString encodes obj and returns it as a string.
	DumpString(obj any) (string, error)

	// StrLike reports whether the handler operates on text rather than raw
	// bytes. Text handlers transport content through GetText/PutText.
	StrLike() bool
}

// handlers maps format tokens to their handler. Populated once here and
// never mutated afterwards.
var handlers = map[string]Handler{
	"json": JSONHandler{},
	"yaml": YAMLHandler{},
	"yml":  YAMLHandler{},
}

// HandlerFor returns the handler registered for a format token.
func HandlerFor(format string) (Handler, bool) {
	h, ok := handlers[format]
	return h, ok
}

// Formats returns the registered format tokens.
func Formats() []string {
	out := make([]string, 0, len(handlers))
	for format := range handlers {
		out = append(out, format)
	}
	return out
}
