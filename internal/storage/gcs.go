package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// BucketConfig locates the bucket and the credentials used to reach it.
type BucketConfig struct {
	ProjectID       string
	CredentialsPath string
	Bucket          string
	PublicBaseURL   string
}

// Bucket is an ObjectStore backed by a Cloud Storage bucket reached through the Firebase Admin SDK.
type Bucket struct {
	handle  *gcs.BucketHandle
	name    string
	baseURL string
}

// NewBucket initialises the Firebase app and resolves the bucket handle.
// Without a credentials path the SDK falls back to application default credentials.
func NewBucket(ctx context.Context, cfg BucketConfig) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket name is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.Bucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Storage client: %w", err)
	}
	handle, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.Bucket, err)
	}

	return &Bucket{
		handle:  handle,
		name:    cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (b *Bucket) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = 0 // single request, no resumable session

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", key, err)
	}
	return PublicURL(b.baseURL, b.name, key), nil
}

// PublicURL is the address under which the bucket serves key.
func PublicURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, key)
}
