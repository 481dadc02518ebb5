package state

import "sync/atomic"

// Clock stamps frames with a monotonically increasing sequence number so
// spectators can drop stale frames.
type Clock struct {
	counter uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return atomic.AddUint64(&c.counter, 1)
}
