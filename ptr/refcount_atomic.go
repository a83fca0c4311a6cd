//go:build !sharedptr_plain

package ptr

import "sync/atomic"

// refcount is the shared reference counter. This is the default, atomic
// representation: handles sharing one control block may be cloned and
// released concurrently, and the goroutine whose decrement reaches zero
// observes all handle activity that preceded the other releases.
type refcount struct {
	n atomic.Int64
}

func (c *refcount) init(v int64) { c.n.Store(v) }

func (c *refcount) incr() { c.n.Add(1) }

// decr subtracts one and returns the new value. The return value decides a
// single winner for the zero transition.
func (c *refcount) decr() int64 { return c.n.Add(-1) }

func (c *refcount) load() int64 { return c.n.Load() }
