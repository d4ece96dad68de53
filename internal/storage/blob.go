// Package storage persists uploaded document bytes in a blob bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"

	// Register blob bucket drivers.
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobStore reads and writes uploaded document content.
type BlobStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// bucketStore implements BlobStore on top of a gocloud.dev bucket.
type bucketStore struct {
	bucket *blob.Bucket
}

// OpenBucket opens the bucket at the given URL.
// Supported schemes: file://, s3://, gs://, azblob://, mem://.
func OpenBucket(ctx context.Context, bucketURL string) (BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob bucket: %w", err)
	}
	return &bucketStore{bucket: bucket}, nil
}

// Save streams the content into the bucket under key.
func (b *bucketStore) Save(ctx context.Context, key string, contentType string, r io.Reader) error {
	w, err := b.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to open blob writer: %w", err)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write blob: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close blob writer: %w", err)
	}
	return nil
}

// Load reads the full content stored under key.
func (b *bucketStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Delete removes the content stored under key.
func (b *bucketStore) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Close releases the underlying bucket.
func (b *bucketStore) Close() error {
	return b.bucket.Close()
}
