package broadcastlog

import (
	"iter"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Log is a fixed-capacity, append-only sequence of values.
// Push, Get and the other read methods may be called concurrently from many goroutines.
type Log[T any] struct {
	// padding keeps the hot counters off each other's cache lines
	_         cpu.CacheLinePad
	cursor    atomic.Uint64 // reservations granted so far, rejected ones included
	_         cpu.CacheLinePad
	published atomic.Uint64 // length of the contiguous published prefix
	_         cpu.CacheLinePad
	capacity  uint64
	slots     []slot[T]
	notify    notifier
	logger    *slog.Logger
}

// New creates a Log able to hold exactly capacity values.
// All slots are allocated up front. A zero capacity yields a Log that is always full.
func New[T any](capacity int, opts ...Option) *Log[T] {
	if capacity < 0 {
		panic("capacity must be >= 0")
	}

	o := newOptions(opts)
	l := &Log[T]{
		capacity: uint64(capacity),
		slots:    make([]slot[T], capacity),
		logger:   o.logger,
	}
	l.logger.Debug("log created", slog.Int("capacity", capacity))

	return l
}

// Push appends v to the log and returns the index it was stored at.
// Returns (-1, ErrFull) if the log has no free slot left; nothing is written in that case.
// Push never blocks and never retries. May be called concurrently from many goroutines.
func (l *Log[T]) Push(v T) (int, error) {
	// The capacity check must use the value before the increment:
	// with the post-increment value two callers could both claim the last slot.
	pos := l.cursor.Add(1) - 1
	if pos >= l.capacity {
		if pos == l.capacity {
			// exactly one caller observes the transition
			l.logger.Debug("log is full", slog.Uint64("capacity", l.capacity))
		}
		return -1, ErrFull
	}

	// We own pos for good, nobody else writes this slot.
	l.slots[pos].publish(v)
	l.advance()
	l.notify.broadcast()

	return int(pos), nil
}

// advance moves the published watermark over every slot that is already visible.
// Every publisher runs it, so a hole left by a slow writer is closed by that writer
// itself once it publishes, carrying the watermark over the entries published behind it.
func (l *Log[T]) advance() {
	for {
		n := l.published.Load()
		if n >= l.capacity || !l.slots[n].published() {
			return
		}
		// losing the race means someone else moved it; reload and continue
		l.published.CompareAndSwap(n, n+1)
	}
}

// Get returns the value stored at index.
// Returns (zero, false) if index is out of range or the entry is not published yet;
// both cases mean the entry is not readable right now.
func (l *Log[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 || uint64(index) >= l.capacity {
		return zero, false
	}

	s := &l.slots[index]
	if !s.published() {
		return zero, false
	}

	return s.val, true
}

// Len returns the number of entries in the contiguous published prefix.
// An entry published while a lower index is still being written is not counted
// until the gap is filled, so Len may lag behind Get. The result is a snapshot:
// it never decreases, but may be stale as soon as it is returned.
func (l *Log[T]) Len() int {
	return int(l.published.Load())
}

// Capacity returns the fixed log capacity.
func (l *Log[T]) Capacity() int {
	return int(l.capacity)
}

// IsEmpty reports whether no entry is readable through Len yet.
func (l *Log[T]) IsEmpty() bool {
	return l.Len() == 0
}

// All returns an iterator over the entries published when All is called, in index order.
// Entries published afterwards are not visited.
func (l *Log[T]) All() iter.Seq2[int, T] {
	n := l.Len()
	return func(yield func(int, T) bool) {
		for i := 0; i < n; i++ {
			// i is inside the prefix observed by Len, so the slot is published
			if !yield(i, l.slots[i].val) {
				return
			}
		}
	}
}

// Values is like All but yields only the values.
func (l *Log[T]) Values() iter.Seq[T] {
	n := l.Len()
	return func(yield func(T) bool) {
		for i := 0; i < n; i++ {
			if !yield(l.slots[i].val) {
				return
			}
		}
	}
}

// Iter returns an Iterator over the entries published at the time of the call.
func (l *Log[T]) Iter() *Iterator[T] {
	return &Iterator[T]{log: l, end: l.Len()}
}

// Iterator walks a snapshot of the published prefix of a Log.
// It is finite and is not restartable. An Iterator must not be shared between goroutines,
// but any number of them may run alongside concurrent pushes.
type Iterator[T any] struct {
	log  *Log[T]
	next int
	end  int
}

// Next returns the next entry and its index.
// Returns (-1, zero, false) when the snapshot is exhausted.
func (it *Iterator[T]) Next() (int, T, bool) {
	if it.next >= it.end {
		var zero T
		return -1, zero, false
	}

	i := it.next
	it.next++

	return i, it.log.slots[i].val, true
}

// Remaining returns how many entries Next will still yield.
func (it *Iterator[T]) Remaining() int {
	return it.end - it.next
}

// Stats is a point-in-time view of a Log's counters.
type Stats struct {
	Capacity  int
	Reserved  int    // indices granted to producers, published or not
	Published int    // contiguous published prefix, same as Len
	Rejected  uint64 // pushes that failed with ErrFull
	Waiters   int    // goroutines blocked in Wait
}

// Stats retrieves the current statistics of the Log.
func (l *Log[T]) Stats() Stats {
	c := l.cursor.Load()
	reserved := min(c, l.capacity)

	return Stats{
		Capacity:  int(l.capacity),
		Reserved:  int(reserved),
		Published: l.Len(),
		Rejected:  c - reserved,
		Waiters:   int(l.notify.waiters.Load()),
	}
}
