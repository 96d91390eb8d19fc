package codec

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLHandler encodes and decodes YAML documents, registered for both the
// yaml and yml tokens.
type YAMLHandler struct{}

// LoadFrom decodes one YAML document from r.
func (YAMLHandler) LoadFrom(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DumpTo encodes obj as YAML into w.
func (YAMLHandler) DumpTo(obj any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(obj); err != nil {
		return err
	}
	return enc.Close()
}

// DumpString encodes obj as a YAML string.
func (y YAMLHandler) DumpString(obj any) (string, error) {
	var b strings.Builder
	if err := y.DumpTo(obj, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// StrLike reports that YAML is a text format.
func (YAMLHandler) StrLike() bool { return true }
