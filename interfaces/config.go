package interfaces

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Config is the flat key/value configuration object passed to backend
// constructors. Values are backend specific; unknown keys are passed through.
type Config map[string]any

// String returns the value under key as a string, or def if absent.
func (c Config) String(key, def string) string {
	v, ok := c[key]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Bool returns the value under key as a bool, or def if absent or not a bool.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Duration returns the value under key as a duration. String values are
// parsed with time.ParseDuration.
func (c Config) Duration(key string, def time.Duration) time.Duration {
	v, ok := c[key]
	if !ok {
		return def
	}
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed
		}
	}
	return def
}

// Key computes the deterministic cache key for a client built from the given
// backend name, URI prefix and configuration. Two resolution requests with
// equal keys must yield the same client object.
func Key(backend, prefix string, cfg Config) string {
	var b strings.Builder
	b.WriteString(backend)
	b.WriteByte(':')
	b.WriteString(prefix)

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ":%s:%v", k, cfg[k])
	}
	return b.String()
}

// ParseURIPrefix extracts the scheme prefix from a URI of the form
// scheme://rest. URIs without "://" have no prefix and are treated as local
// filesystem paths. Bare "scheme:rest" forms are not recognized.
func ParseURIPrefix(uri string) (string, bool) {
	idx := strings.Index(uri, "://")
	if idx < 0 {
		return "", false
	}
	return uri[:idx], true
}
