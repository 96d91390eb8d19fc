package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LCF-xybq/file-handler/interfaces"
)

func TestSplitS3Path(t *testing.T) {
	bucket, key, err := splitS3Path("s3://my-bucket/deep/key.json")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "deep/key.json", key)

	_, _, err = splitS3Path("s3://bucket-only")
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)

	_, _, err = splitS3Path("s3:///key-without-bucket")
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestS3Backend_Construction(t *testing.T) {
	backend, err := NewS3Backend(discardLogger(), interfaces.Config{
		"region":   "eu-west-1",
		"endpoint": "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3", backend.Name())
	assert.False(t, backend.AllowSymlink())
}

func TestS3Backend_JoinPath(t *testing.T) {
	backend, err := NewS3Backend(discardLogger(), nil)
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/a/b", backend.JoinPath("s3://bucket/", "/a/", "b"))
}
