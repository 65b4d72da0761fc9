package broadcastlog

import (
	"context"
	"iter"
)

// Open creates a Log with the given capacity and returns its two halves.
// Both halves refer to the same Log and may be copied freely between goroutines.
func Open[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T]) {
	l := New[T](capacity, opts...)
	return l.Sender(), l.Receiver()
}

// Sender returns a write-only view of the log.
func (l *Log[T]) Sender() *Sender[T] {
	return &Sender[T]{log: l}
}

// Receiver returns a read-only view of the log.
func (l *Log[T]) Receiver() *Receiver[T] {
	return &Receiver[T]{log: l}
}

// Sender is the writing half of a Log.
type Sender[T any] struct {
	log *Log[T]
}

// Send appends v to the log, see Log.Push.
func (s *Sender[T]) Send(v T) (int, error) {
	return s.log.Push(v)
}

// Log returns the underlying log.
func (s *Sender[T]) Log() *Log[T] {
	return s.log
}

// Receiver is the reading half of a Log.
// Reading does not consume entries: every Receiver sees every entry.
type Receiver[T any] struct {
	log *Log[T]
}

// Recv returns the entry at index, see Log.Get.
func (r *Receiver[T]) Recv(index int) (T, bool) {
	return r.log.Get(index)
}

// Wait blocks until the entry at index is published, see Log.Wait.
func (r *Receiver[T]) Wait(ctx context.Context, index int) (T, error) {
	return r.log.Wait(ctx, index)
}

// Len returns the published prefix length, see Log.Len.
func (r *Receiver[T]) Len() int {
	return r.log.Len()
}

func (r *Receiver[T]) Iter() *Iterator[T] {
	return r.log.Iter()
}

func (r *Receiver[T]) Follow(ctx context.Context, from int) iter.Seq2[int, T] {
	return r.log.Follow(ctx, from)
}

// Log returns the underlying log.
func (r *Receiver[T]) Log() *Log[T] {
	return r.log
}
