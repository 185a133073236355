package resources_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/testersconnect/site/internal/resources"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/storage"
)

var (
	errInsert = errors.New("insert rejected")
	errUpload = errors.New("upload rejected")
)

type memRepo struct {
	mu         sync.Mutex
	items      []resources.Resource
	failInsert bool
	clock      time.Time
}

func (m *memRepo) newest(keep func(resources.Resource) bool) []resources.Resource {
	out := []resources.Resource{}
	for _, r := range m.items {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b resources.Resource) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (m *memRepo) ListPublished(ctx context.Context) ([]resources.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newest(func(r resources.Resource) bool { return r.IsPublished }), nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]resources.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newest(func(resources.Resource) bool { return true }), nil
}

func (m *memRepo) FindPublishedBySlug(ctx context.Context, slug string) (*resources.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.items {
		if r.Slug == slug && r.IsPublished {
			return &r, nil
		}
	}
	return nil, resources.ErrNotFound
}

func (m *memRepo) Insert(ctx context.Context, r resources.Resource) (*resources.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert {
		return nil, errInsert
	}
	m.clock = m.clock.Add(time.Minute)
	r.ID = uuid.New()
	r.CreatedAt = m.clock
	m.items = append(m.items, r)
	return &r, nil
}

// flakyStore fails writes to one bucket and records stores and deletes.
type flakyStore struct {
	*storage.Filesystem
	failBucket string
	stored     []string
	deleted    []string
}

func (f *flakyStore) Store(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if bucket == f.failBucket {
		return errUpload
	}
	if err := f.Filesystem.Store(ctx, bucket, key, data, contentType); err != nil {
		return err
	}
	f.stored = append(f.stored, bucket+"/"+key)
	return nil
}

func (f *flakyStore) Delete(ctx context.Context, bucket, key string) error {
	f.deleted = append(f.deleted, bucket+"/"+key)
	return f.Filesystem.Delete(ctx, bucket, key)
}

func newFlakyStore(t *testing.T, failBucket string) *flakyStore {
	t.Helper()
	fs, err := storage.NewFilesystem(&storage.Config{
		BasePath:      t.TempDir(),
		PublicBaseURL: "http://cdn.test",
	}, logging.Discard())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	return &flakyStore{Filesystem: fs, failBucket: failBucket}
}
