package broadcastlog

import (
	"sync"
	"sync/atomic"
)

// notifier wakes every goroutine blocked in Wait after a publish.
// The broadcast channel is closed on notify and lazily replaced by the next waiter,
// which works as a condition variable that can be combined with a timeout in select.
//
// Publishers only take the mutex when the waiter count is non-zero,
// so the push path stays lock-free as long as nobody waits.
type notifier struct {
	waiters atomic.Int64
	mu      sync.Mutex
	ch      chan struct{}
}

// subscribe registers a waiter and returns the channel that the next broadcast closes.
// The caller must re-check its condition after subscribe and call unsubscribe when done.
func (n *notifier) subscribe() <-chan struct{} {
	// registering before reading the channel pairs with broadcast, which publishes
	// before reading the counter: either the waiter sees the entry or the publisher sees the waiter
	n.waiters.Add(1)

	n.mu.Lock()
	if n.ch == nil {
		n.ch = make(chan struct{})
	}
	ch := n.ch
	n.mu.Unlock()

	return ch
}

func (n *notifier) unsubscribe() {
	n.waiters.Add(-1)
}

// broadcast wakes all current waiters.
func (n *notifier) broadcast() {
	if n.waiters.Load() == 0 {
		return
	}

	n.mu.Lock()
	if n.ch != nil {
		close(n.ch)
		n.ch = nil
	}
	n.mu.Unlock()
}
