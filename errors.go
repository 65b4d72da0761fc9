package broadcastlog

import "fmt"

var (
	// ErrFull is returned by Push once every slot has been reserved.
	// The condition is permanent for the life of the Log.
	ErrFull = fmt.Errorf("log is full")
	// ErrTimeout is returned by Wait when the context ends before the entry is published.
	ErrTimeout = fmt.Errorf("timeout")
)
