package ptr

import (
	"github.com/zgrigoryan/shared-pointer/errors"
)

// block is the control record shared by every handle owning the same
// resource. The payload P is *T for Ref handles and []T for Arr handles;
// both variants run through the same retain/release skeleton so the
// zero-transition logic cannot drift between them.
//
// The counter is never exposed; retain and release are the only mutation
// paths, and the handle copy/move/release methods are their only callers.
type block[P any] struct {
	payload P
	cleanup func(P)
	refs    refcount
}

// newBlock allocates a control block owning payload with count 1. The
// cleanup action is bound here and never changes afterwards.
func newBlock[P any](payload P, cleanup func(P)) *block[P] {
	b := &block[P]{
		payload: payload,
		cleanup: cleanup,
	}
	b.refs.init(1)
	return b
}

func (b *block[P]) retain() {
	b.refs.incr()
}

// release drops one reference. Exactly one caller observes the one-to-zero
// transition; that caller runs the cleanup action with the stored payload
// and clears the block, then returns true. A count below zero means a
// handle was released more often than it was shared, which is always a
// bug in the caller, so it panics rather than corrupt the cleanup contract.
func (b *block[P]) release() bool {
	switch n := b.refs.decr(); {
	case n == 0:
		if b.cleanup != nil {
			b.cleanup(b.payload)
		}
		var zero P
		b.payload = zero
		b.cleanup = nil
		return true
	case n < 0:
		panic(errors.CountUnderflow(n))
	}
	return false
}

// count returns a snapshot of the reference count. Advisory only: under
// concurrent use it may be stale the instant after reading. Not a
// synchronization primitive.
func (b *block[P]) count() int {
	return int(b.refs.load())
}
