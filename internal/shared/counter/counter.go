package counter

import "sync/atomic"

// Counter tracks how many requests the process has served. It is the only
// piece of shared mutable state in the application, so it hides behind a
// narrow increment/read interface.
type Counter interface {
	Increment()
	Snapshot() int64
}

type atomicCounter struct {
	n atomic.Int64
}

func New() Counter {
	return &atomicCounter{}
}

func (c *atomicCounter) Increment() {
	c.n.Add(1)
}

// Snapshot returns the current count without blocking writers.
func (c *atomicCounter) Snapshot() int64 {
	return c.n.Load()
}
