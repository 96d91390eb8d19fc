package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/LCF-xybq/file-handler/interfaces"
)

// S3Backend implements a storage backend using Amazon S3 or compatible
// services. Paths use the form s3://bucket/key.
type S3Backend struct {
	client *s3.S3
	log    *slog.Logger
}

// NewS3Backend creates an S3 storage backend from a flat configuration:
//
//   - region: AWS region (default us-east-1)
//   - endpoint: custom endpoint for S3-compatible services
//   - accessKey / secretKey: static credentials; omit for public buckets
func NewS3Backend(log *slog.Logger, cfg interfaces.Config) (*S3Backend, error) {
	awsCfg := aws.Config{
		Region: aws.String(cfg.String("region", "us-east-1")),
	}
	if endpoint := cfg.String("endpoint", ""); endpoint != "" {
		awsCfg.Endpoint = aws.String(endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if accessKey := cfg.String("accessKey", ""); accessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(accessKey, cfg.String("secretKey", ""), "")
	}

	sess, err := session.NewSession(&awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Backend{
		client: s3.New(sess),
		log:    log,
	}, nil
}

// Name returns a unique identifier for this storage backend.
func (b *S3Backend) Name() string { return "s3" }

// AllowSymlink reports that symlinks are not meaningful for object keys.
func (b *S3Backend) AllowSymlink() bool { return false }

// Get retrieves the whole object at an s3://bucket/key path.
// Returns ErrNotFound if the object or bucket does not exist.
func (b *S3Backend) Get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()

	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}

	result, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	b.log.Debug("Fetched content from S3",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// GetText retrieves the object at path as text in the given encoding.
func (b *S3Backend) GetText(ctx context.Context, path, encoding string) (string, error) {
	data, err := b.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return decodeText(data, encoding)
}

// Put uploads data to an s3://bucket/key path.
func (b *S3Backend) Put(ctx context.Context, data []byte, path string) error {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return err
	}

	_, err = b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	b.log.Debug("Stored content in S3",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("size", len(data)))

	return nil
}

// PutText uploads text to an s3://bucket/key path in the given encoding.
func (b *S3Backend) PutText(ctx context.Context, text, path, encoding string) error {
	data, err := encodeText(text, encoding)
	if err != nil {
		return err
	}
	return b.Put(ctx, data, path)
}

// Remove deletes the object at an s3://bucket/key path.
func (b *S3Backend) Remove(ctx context.Context, path string) error {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return err
	}

	_, err = b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	return nil
}

// Exists reports whether the object at path exists.
func (b *S3Backend) Exists(ctx context.Context, path string) (bool, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return false, err
	}

	_, err = b.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	return true, nil
}

// IsDir reports whether path denotes a key prefix rather than an object.
func (b *S3Backend) IsDir(ctx context.Context, path string) (bool, error) {
	return strings.HasSuffix(path, "/"), nil
}

// IsFile reports whether the object at path exists.
func (b *S3Backend) IsFile(ctx context.Context, path string) (bool, error) {
	if strings.HasSuffix(path, "/") {
		return false, nil
	}
	return b.Exists(ctx, path)
}

// JoinPath joins object key elements with forward slashes.
func (b *S3Backend) JoinPath(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		parts = append(parts, strings.Trim(e, "/"))
	}
	return strings.Join(parts, "/")
}

// splitS3Path splits s3://bucket/key into bucket and key.
func splitS3Path(path string) (string, string, error) {
	rest := strings.TrimPrefix(path, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: expected s3://bucket/key, got %s", interfaces.ErrInvalidArgument, path)
	}
	return bucket, key, nil
}

// isS3NotFound reports whether err denotes a missing object or bucket.
func isS3NotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}
	return false
}
