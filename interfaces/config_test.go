package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyDeterministic(t *testing.T) {
	cfg1 := Config{"region": "us-east-1", "endpoint": "http://localhost:9000"}
	cfg2 := Config{"endpoint": "http://localhost:9000", "region": "us-east-1"}

	assert.Equal(t, Key("s3", "", cfg1), Key("s3", "", cfg2),
		"key must not depend on map iteration order")
}

func TestKeyDistinguishesConfigurations(t *testing.T) {
	assert.NotEqual(t, Key("disk", "", nil), Key("http", "", nil))
	assert.NotEqual(t, Key("disk", "", nil), Key("disk", "http", nil))
	assert.NotEqual(t,
		Key("s3", "", Config{"region": "us-east-1"}),
		Key("s3", "", Config{"region": "eu-west-1"}))
}

func TestParseURIPrefix(t *testing.T) {
	tests := []struct {
		uri    string
		prefix string
		ok     bool
	}{
		{"s3://bucket/key", "s3", true},
		{"http://host/file.json", "http", true},
		{"https://host/file.json", "https", true},
		{"/local/path/file.json", "", false},
		{"relative/path", "", false},
		{"C:whatever", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			prefix, ok := ParseURIPrefix(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestListOptionsSuffixes(t *testing.T) {
	t.Run("nil suffix", func(t *testing.T) {
		suffixes, err := ListOptions{ListFile: true}.Suffixes()
		assert.NoError(t, err)
		assert.Nil(t, suffixes)
	})

	t.Run("string suffix", func(t *testing.T) {
		suffixes, err := ListOptions{ListFile: true, Suffix: ".json"}.Suffixes()
		assert.NoError(t, err)
		assert.Equal(t, []string{".json"}, suffixes)
	})

	t.Run("string list suffix", func(t *testing.T) {
		suffixes, err := ListOptions{ListFile: true, Suffix: []string{".json", ".yaml"}}.Suffixes()
		assert.NoError(t, err)
		assert.Equal(t, []string{".json", ".yaml"}, suffixes)
	})

	t.Run("suffix with ListDir is invalid", func(t *testing.T) {
		_, err := ListOptions{ListDir: true, Suffix: ".json"}.Suffixes()
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("non-string suffix is invalid", func(t *testing.T) {
		_, err := ListOptions{ListFile: true, Suffix: 42}.Suffixes()
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestMatchSuffix(t *testing.T) {
	assert.True(t, MatchSuffix("a/b.json", nil))
	assert.True(t, MatchSuffix("a/b.json", []string{".json"}))
	assert.True(t, MatchSuffix("a/b.yaml", []string{".json", ".yaml"}))
	assert.False(t, MatchSuffix("a/b.txt", []string{".json"}))
}
