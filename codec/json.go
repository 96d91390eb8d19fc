package codec

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONHandler is the standard-library JSON handler. JSON is a text format,
// so content is transported through the text API of the storage layer.
type JSONHandler struct{}

// LoadFrom decodes one JSON document from r.
func (JSONHandler) LoadFrom(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DumpTo encodes obj as JSON into w.
func (JSONHandler) DumpTo(obj any, w io.Writer) error {
	return json.NewEncoder(w).Encode(obj)
}

// DumpString encodes obj as a JSON string.
func (JSONHandler) DumpString(obj any) (string, error) {
	var b strings.Builder
	if err := json.NewEncoder(&b).Encode(obj); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// StrLike reports that JSON is a text format.
func (JSONHandler) StrLike() bool { return true }
