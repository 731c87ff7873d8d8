// Package storage uploads request attachments to the object storage bucket.
package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// File is an attachment buffered fully in memory by the ingress layer.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ObjectStore writes one object and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Uploader struct {
	store  ObjectStore
	newKey func(name string) string
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store, newKey: objectKey}
}

// objectKey prefixes the base name with a random uuid so concurrent uploads never share a key.
func objectKey(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" {
		base = "file"
	}
	return uuid.NewString() + "-" + base
}

// Upload stores every file concurrently and returns their URLs in input order.
// The first failure fails the batch; objects already written are left in place.
func (u *Uploader) Upload(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := u.store.Put(ctx, u.newKey(f.Name), f.ContentType, f.Data)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
