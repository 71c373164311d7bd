package save

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

var ErrNotFound = errors.New("save: not found")

// Store persists opaque blobs under an object/property pair.
type Store interface {
	Exists(object, prop string) bool
	Load(object, prop string) ([]byte, error)
	Save(object, prop string, data []byte) error
	Delete(object, prop string) error
}

// GDataStore keeps data in the per-user application data directory.
type GDataStore struct {
	m *gdata.Manager
}

func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open gdata %s: %w", appName, err)
	}
	return &GDataStore{m: m}, nil
}

func NewGDataStore(m *gdata.Manager) *GDataStore {
	return &GDataStore{m: m}
}

func (s *GDataStore) Exists(object, prop string) bool {
	return s.m.ObjectPropExists(object, prop)
}

func (s *GDataStore) Load(object, prop string) ([]byte, error) {
	if !s.m.ObjectPropExists(object, prop) {
		return nil, ErrNotFound
	}
	return s.m.LoadObjectProp(object, prop)
}

func (s *GDataStore) Save(object, prop string, data []byte) error {
	return s.m.SaveObjectProp(object, prop, data)
}

func (s *GDataStore) Delete(object, prop string) error {
	if !s.m.ObjectPropExists(object, prop) {
		return nil
	}
	return s.m.DeleteObjectProp(object, prop)
}

// MemoryStore is an in-process Store for tests and for running without a
// writable data directory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func memoryKey(object, prop string) string {
	return object + "/" + prop
}

func (s *MemoryStore) Exists(object, prop string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[memoryKey(object, prop)]
	return ok
}

func (s *MemoryStore) Load(object, prop string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[memoryKey(object, prop)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(object, prop string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[memoryKey(object, prop)] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Delete(object, prop string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memoryKey(object, prop))
	return nil
}
