package baseline

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/aradilov/broadcastlog"
)

// Reservation by compare-and-swap, after Dmitry Vyukov's bounded MPMC queue
// https://www.1024cores.net/home/lock-free-algorithms/queues/bounded-mpmc-queue
// The ring never wraps: once every slot is taken it is full for good.

const goschedEvery = 64 // reduce runtime.Gosched() frequency in hot loops

type ringSlot[T any] struct {
	seq atomic.Uint64 // pos+1 once the value at pos is published
	val T
}

// CASRing reserves slots with a CAS loop on the tail instead of a single fetch-add.
// Len counts published entries even when a lower index is still pending,
// so Get may miss below Len.
type CASRing[T any] struct {
	_         cpu.CacheLinePad
	tail      atomic.Uint64 // next position to reserve
	_         cpu.CacheLinePad
	published atomic.Uint64 // entries published so far, not necessarily contiguous
	_         cpu.CacheLinePad
	capacity  uint64
	slots     []ringSlot[T]
}

func NewCASRing[T any](capacity int) *CASRing[T] {
	if capacity < 0 {
		panic("capacity must be >= 0")
	}
	return &CASRing[T]{
		capacity: uint64(capacity),
		slots:    make([]ringSlot[T], capacity),
	}
}

// Push reserves the tail position and publishes v into it.
// Safe to call concurrently from many producer goroutines.
func (r *CASRing[T]) Push(v T) (int, error) {
	var spins uint32
	for {
		pos := r.tail.Load()
		if pos >= r.capacity {
			return -1, broadcastlog.ErrFull
		}

		if r.tail.CompareAndSwap(pos, pos+1) {
			// We won this slot.
			s := &r.slots[pos]
			s.val = v
			s.seq.Store(pos + 1)
			r.published.Add(1)
			return int(pos), nil
		}

		// Another producer moved the tail, retry with a new pos.
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}
}

func (r *CASRing[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 || uint64(index) >= r.capacity {
		return zero, false
	}

	s := &r.slots[index]
	if s.seq.Load() != uint64(index)+1 {
		return zero, false
	}
	return s.val, true
}

func (r *CASRing[T]) Len() int {
	return int(r.published.Load())
}
