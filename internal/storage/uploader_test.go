package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    map[string]error // keyed by file name suffix
	barrier chan struct{}    // when set, each Put waits until every caller has arrived
	waiting int
	want    int
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, fail: map[string]error{}}
}

func (m *memStore) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	if m.barrier != nil {
		m.mu.Lock()
		m.waiting++
		if m.waiting == m.want {
			close(m.barrier)
		}
		m.mu.Unlock()
		select {
		case <-m.barrier:
		case <-time.After(2 * time.Second):
			return "", errors.New("uploads were not issued concurrently")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for suffix, err := range m.fail {
		if strings.HasSuffix(key, suffix) {
			return "", err
		}
	}
	m.objects[key] = data
	return PublicURL("https://storage.googleapis.com", "bucket", key), nil
}

func files(names ...string) []File {
	out := make([]File, len(names))
	for i, n := range names {
		out[i] = File{Name: n, ContentType: "image/png", Data: []byte("data-" + n)}
	}
	return out
}

func TestUploadPreservesOrder(t *testing.T) {
	store := newMemStore()
	u := NewUploader(store)

	urls, err := u.Upload(context.Background(), files("a.png", "b.png", "c.png"))
	require.NoError(t, err)
	require.Len(t, urls, 3)

	for i, name := range []string{"a.png", "b.png", "c.png"} {
		assert.True(t, strings.HasPrefix(urls[i], "https://storage.googleapis.com/bucket/"), urls[i])
		assert.True(t, strings.HasSuffix(urls[i], "-"+name), urls[i])
	}
	assert.Len(t, store.objects, 3)
}

func TestUploadRunsConcurrently(t *testing.T) {
	store := newMemStore()
	store.want = 3
	store.barrier = make(chan struct{})

	urls, err := NewUploader(store).Upload(context.Background(), files("a.png", "b.png", "c.png"))
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestUploadSameNameGetsDistinctObjects(t *testing.T) {
	store := newMemStore()

	urls, err := NewUploader(store).Upload(context.Background(), files("same.png", "same.png", "same.png"))
	require.NoError(t, err)

	assert.Len(t, store.objects, 3)
	assert.NotEqual(t, urls[0], urls[1])
	assert.NotEqual(t, urls[1], urls[2])
}

func TestUploadFailsWholeBatch(t *testing.T) {
	store := newMemStore()
	store.fail["-b.png"] = errors.New("bucket unavailable")

	urls, err := NewUploader(store).Upload(context.Background(), files("a.png", "b.png", "c.png"))
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.Contains(t, err.Error(), "b.png")
}

func TestUploadNoFiles(t *testing.T) {
	store := newMemStore()

	urls, err := NewUploader(store).Upload(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
	assert.Empty(t, store.objects)
}

func TestObjectKeyUsesBaseName(t *testing.T) {
	key := objectKey("../../etc/photo.jpg")
	assert.True(t, strings.HasSuffix(key, "-photo.jpg"), key)
	assert.NotContains(t, key, "/")

	assert.True(t, strings.HasSuffix(objectKey(""), "-file"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example/b/k.png", PublicURL("https://cdn.example/", "b", "k.png"))
}
