package database

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a mutex-guarded map used by the in-memory repositories when
// no MongoDB URI is configured and in unit tests. Values are stored and
// returned by value.
type MemoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[primitive.ObjectID]T
	order  []primitive.ObjectID
	unique func(T) string
}

// NewMemoryStore returns an empty store. unique, when non-nil, yields the key
// that must be unique across stored values (an email, for example).
func NewMemoryStore[T any](unique func(T) string) *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[primitive.ObjectID]T), unique: unique}
}

func (s *MemoryStore[T]) Insert(id primitive.ObjectID, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return ErrDuplicate
	}
	if s.unique != nil {
		key := s.unique(v)
		for _, existing := range s.items {
			if s.unique(existing) == key {
				return ErrDuplicate
			}
		}
	}
	s.items[id] = v
	s.order = append(s.order, id)
	return nil
}

func (s *MemoryStore[T]) Get(id primitive.ObjectID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Update runs fn on a copy of the stored value and saves the result unless fn fails.
func (s *MemoryStore[T]) Update(id primitive.ObjectID, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	s.items[id] = v
	return v, nil
}

func (s *MemoryStore[T]) Delete(id primitive.ObjectID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return v, nil
}

// Find returns the values matching pred in insertion order. A nil pred matches all.
func (s *MemoryStore[T]) Find(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, id := range s.order {
		v := s.items[id]
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first value matching pred, or ErrNotFound.
func (s *MemoryStore[T]) First(pred func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if v := s.items[id]; pred(v) {
			return v, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
