//go:build sharedptr_plain

package ptr

// refcount is the shared reference counter. This is the plain, unsynchronized
// representation selected by the sharedptr_plain build tag. Safe only when
// all handles sharing a control block are confined to a single goroutine or
// all access is externally serialized.
type refcount struct {
	n int64
}

func (c *refcount) init(v int64) { c.n = v }

func (c *refcount) incr() { c.n++ }

func (c *refcount) decr() int64 {
	c.n--
	return c.n
}

func (c *refcount) load() int64 { return c.n }
