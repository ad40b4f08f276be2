package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-archiver/internal/weather"
)

var (
	// ErrNotFound is returned when no object exists for a key.
	ErrNotFound = errors.New("object not found")

	// ErrObjectExists is returned when a key has already been written.
	ErrObjectExists = errors.New("object already exists")
)

var _ weather.ObjectStore = (*MemoryStore)(nil)

// Object is an archived payload held in memory.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	StoredAt    time.Time
}

// MemoryStore is a concurrency-safe in-memory object store.
type MemoryStore struct {
	mu sync.RWMutex

	objects map[string]Object
	order   []string // insertion order, oldest first

	maxObjects int // 0 = unlimited
}

// NewMemoryStore creates a new MemoryStore.
// If maxObjects is <= 0, it is treated as unlimited.
func NewMemoryStore(maxObjects int) *MemoryStore {
	return &MemoryStore{
		objects:    make(map[string]Object),
		maxObjects: maxObjects,
	}
}

// Put stores a copy of body. Keys are write-once.
func (s *MemoryStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; ok {
		return ErrObjectExists
	}

	b := make([]byte, len(body))
	copy(b, body)
	s.objects[key] = Object{
		Key:         key,
		Body:        b,
		ContentType: contentType,
		StoredAt:    time.Now().UTC(),
	}
	s.order = append(s.order, key)

	// Enforce retention by count.
	if s.maxObjects > 0 && len(s.order) > s.maxObjects {
		over := len(s.order) - s.maxObjects
		for _, k := range s.order[:over] {
			delete(s.objects, k)
		}
		s.order = s.order[over:]
	}
	return nil
}

// Get returns the object stored under key.
func (s *MemoryStore) Get(key string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return Object{}, ErrNotFound
	}
	return obj, nil
}

// Keys returns the sorted keys starting with prefix.
func (s *MemoryStore) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
