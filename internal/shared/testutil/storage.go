package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/gcclub/membercard/internal/shared/storage"
)

// FakePhotoStore keeps photo objects in memory.
type FakePhotoStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Removed []string
}

func NewFakePhotoStore() *FakePhotoStore {
	return &FakePhotoStore{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (s *FakePhotoStore) Save(_ context.Context, memberID, ext string, body io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	objectPath := storage.ObjectPath(memberID, ext)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[objectPath] = data
	s.Types[objectPath] = contentType
	return objectPath, nil
}

func (s *FakePhotoStore) Open(_ context.Context, objectPath string) (*storage.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Objects[objectPath]
	if !ok {
		return nil, storage.ErrPhotoNotFound
	}
	return &storage.Photo{
		Body:        io.NopCloser(bytes.NewReader(data)),
		Size:        int64(len(data)),
		ContentType: s.Types[objectPath],
	}, nil
}

func (s *FakePhotoStore) Remove(_ context.Context, objectPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectPath)
	s.Removed = append(s.Removed, objectPath)
	return nil
}

var _ storage.PhotoStore = (*FakePhotoStore)(nil)
