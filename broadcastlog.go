// Package broadcastlog implements a bounded, append-only, concurrent log.
//
// Many goroutines may Push into a Log and many may read from it at the same
// time. Push reserves a unique index with a single atomic increment, writes
// the value into the reserved slot and then publishes it by flipping the
// slot's readiness marker. Readers only ever observe published values.
// Neither path takes a lock.
//
// A Log never grows, never overwrites and never removes entries: once its
// capacity is exhausted every further Push fails with ErrFull.
package broadcastlog

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// readyFlag is a slot readiness marker occupying a whole cache line.
// It is written once by the owning producer and read by every consumer.
type readyFlag struct {
	v atomic.Uint32
	_ [cacheLineSize - unsafe.Sizeof(atomic.Uint32{})]byte
}

// slot holds one entry of the log.
type slot[T any] struct {
	ready readyFlag // 0 until published, 1 afterwards
	val   T         // written exactly once, before ready is set
}

func (s *slot[T]) published() bool {
	return s.ready.v.Load() == 1
}

// publish stores the value and makes it visible.
// The caller must own write rights on the slot.
func (s *slot[T]) publish(v T) {
	s.val = v
	// the store orders the write of val before any reader that loads ready == 1
	s.ready.v.Store(1)
}
