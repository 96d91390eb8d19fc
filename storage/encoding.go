package storage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// decodeText converts raw bytes to a string in the given encoding. An empty
// encoding means UTF-8. Other encodings are resolved by their IANA name.
func decodeText(data []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: content is not valid UTF-8", interfaces.ErrDecode)
		}
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: unknown encoding %q", interfaces.ErrDecode, encoding)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrDecode, err)
	}
	return string(decoded), nil
}

// encodeText converts a string to raw bytes in the given encoding. An empty
// encoding means UTF-8.
func encodeText(text, encoding string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return []byte(text), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", interfaces.ErrDecode, encoding)
	}

	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrDecode, err)
	}
	return encoded, nil
}
