package attachments

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/agrodash/agroadmin/internal/server/storage"
)

// MemStore is an in-memory storage.Store. UploadErr and RemoveErr, when
// set, are returned instead of touching the map.
type MemStore struct {
	BaseURL   string
	UploadErr error
	RemoveErr error

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemStore(baseURL string) *MemStore {
	return &MemStore{BaseURL: baseURL, objects: map[string][]byte{}}
}

func (s *MemStore) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string, upsert bool) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = buf.Bytes()
	return nil
}

func (s *MemStore) Remove(ctx context.Context, bucket, key string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+key)
	return nil
}

func (s *MemStore) PublicURL(bucket, key string) string {
	return storage.PublicURL(s.BaseURL, bucket, key)
}

func (s *MemStore) KeyFromURL(bucket, url string) (string, bool) {
	return storage.KeyFromPublicURL(s.BaseURL, bucket, url)
}

// Object returns the stored bytes of bucket/key.
func (s *MemStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[bucket+"/"+key]
	return b, ok
}

// Len is the number of stored objects.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var _ storage.Store = (*MemStore)(nil)
