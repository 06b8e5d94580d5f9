package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ironsheep/grime/internal/imaging"
)

// MemoryStore keeps images in process memory.
//
// Images are immutable, so the store hands out the stored pointer itself;
// no copy is needed. Entries stay until deleted or the store is cleared.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]*imaging.Image
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		images: make(map[string]*imaging.Image),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, name string) (*imaging.Image, error) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(name)
	}
	return img, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, name string, img *imaging.Image) error {
	if err := checkPut(name, img); err != nil {
		return err
	}
	s.mu.Lock()
	s.images[name] = img
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[name]; !ok {
		return notFound(name)
	}
	delete(s.images, name)
	return nil
}

// Names implements Store.
func (s *MemoryStore) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// Close implements Store. It is a no-op.
func (s *MemoryStore) Close() error { return nil }
