package baseline

import (
	"sync"

	"github.com/aradilov/broadcastlog"
)

// MutexSlice is a growable slice behind a single mutex.
// It rejects pushes beyond capacity so that it behaves like a Log of the same size.
type MutexSlice[T any] struct {
	mu       sync.Mutex
	capacity int
	data     []T
}

func NewMutexSlice[T any](capacity int) *MutexSlice[T] {
	return &MutexSlice[T]{capacity: capacity}
}

func (s *MutexSlice[T]) Push(v T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) >= s.capacity {
		return -1, broadcastlog.ErrFull
	}
	s.data = append(s.data, v)
	return len(s.data) - 1, nil
}

func (s *MutexSlice[T]) Get(index int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.data) {
		var zero T
		return zero, false
	}
	return s.data[index], true
}

func (s *MutexSlice[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// RWMutexSlice is MutexSlice with shared locking on reads.
type RWMutexSlice[T any] struct {
	mu       sync.RWMutex
	capacity int
	data     []T
}

func NewRWMutexSlice[T any](capacity int) *RWMutexSlice[T] {
	return &RWMutexSlice[T]{capacity: capacity}
}

func (s *RWMutexSlice[T]) Push(v T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) >= s.capacity {
		return -1, broadcastlog.ErrFull
	}
	s.data = append(s.data, v)
	return len(s.data) - 1, nil
}

func (s *RWMutexSlice[T]) Get(index int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.data) {
		var zero T
		return zero, false
	}
	return s.data[index], true
}

func (s *RWMutexSlice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
