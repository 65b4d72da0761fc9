package broadcastlog

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"
)

// Wait blocks until the entry at index is published or ctx ends.
// Returns immediately if the entry is already readable.
// Returns ErrFull if index is outside [0, Capacity), since such an entry can never exist,
// and an error wrapping both ErrTimeout and ctx.Err() when ctx ends first.
//
// Wait is off the lock-free path: it parks the calling goroutine and is woken by publishers.
func (l *Log[T]) Wait(ctx context.Context, index int) (T, error) {
	var zero T
	if index < 0 || uint64(index) >= l.capacity {
		return zero, ErrFull
	}

	for {
		if v, ok := l.Get(index); ok {
			return v, nil
		}

		ch := l.notify.subscribe()
		// re-check after registering, the entry may have been published in between
		if v, ok := l.Get(index); ok {
			l.notify.unsubscribe()
			return v, nil
		}

		select {
		case <-ch:
			l.notify.unsubscribe()
		case <-ctx.Done():
			l.notify.unsubscribe()
			l.logger.Debug("wait abandoned", slog.Int("index", index), slog.Any("cause", ctx.Err()))
			return zero, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
	}
}

// WaitTimeout is like Wait but gives up after timeout.
// It returns false if the entry was not published in time.
// A non-positive timeout only checks the current state.
func (l *Log[T]) WaitTimeout(index int, timeout time.Duration) (T, bool) {
	if timeout <= 0 {
		return l.Get(index)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	v, err := l.Wait(ctx, index)
	return v, err == nil
}

// Follow returns a blocking iterator that yields entries in index order starting at from,
// waiting for each one to be published. It stops after the last slot or when ctx ends.
// Unlike All, Follow does see entries published after it was created.
func (l *Log[T]) Follow(ctx context.Context, from int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := max(from, 0); i < l.Capacity(); i++ {
			v, err := l.Wait(ctx, i)
			if err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}
