package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/storage"

	"github.com/stretchr/testify/require"
)

// memStore is an in-memory cache.Store with tag sets.
type memStore struct {
	mu          sync.Mutex
	values      map[string][]byte
	tags        map[string][]string
	invalidated []string
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}, tags: map[string][]string{}}
}

func (m *memStore) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memStore) Set(_ context.Context, key string, value interface{}, _ time.Duration, tags ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	for _, tag := range tags {
		m.tags[tag] = append(m.tags[tag], key)
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memStore) Invalidate(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tag := range tags {
		for _, k := range m.tags[tag] {
			delete(m.values, k)
		}
		delete(m.tags, tag)
		m.invalidated = append(m.invalidated, tag)
	}
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// fakeImages records uploads and fails on the configured file name.
type fakeImages struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failOn   string
}

func (f *fakeImages) Upload(_ context.Context, filename string, r io.Reader) (*storage.UploadedImage, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	if filename == f.failOn {
		return nil, errors.New("upstream 502")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, filename)
	return &storage.UploadedImage{
		URL:      "https://res.cloudinary.com/demo/image/upload/propertyhub/" + filename,
		PublicID: "propertyhub/" + strings.TrimSuffix(filename, ".png"),
	}, nil
}

func (f *fakeImages) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

// fakePublisher records published routing keys.
type fakePublisher struct {
	keys []string
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	f.keys = append(f.keys, routingKey)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

// requireAppError asserts err is an AppError with the given status and code.
func requireAppError(t *testing.T, err error, status int, code string) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.HTTPStatus)
	require.Equal(t, code, appErr.Code)
	return appErr
}
