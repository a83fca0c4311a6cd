package ptr

import (
	"github.com/zgrigoryan/shared-pointer/errors"
)

// Ref is a shared-ownership handle for a single value. The zero Ref is
// empty: it owns nothing, compares equal to other empty handles, and all
// observers report the empty state. Copy a Ref with Clone, transfer it with
// Move; plain struct assignment does not adjust the reference count and
// must not be used to create a second live handle.
type Ref[T any] struct {
	cb *block[*T]
}

// Adopt takes exclusive ownership of p and returns a handle with use count
// 1, binding the default deleter. A nil p yields an empty handle and no
// control block. The same pointer must not be adopted by an independent
// handle elsewhere; the type cannot detect that, and cleanup would run
// twice.
func Adopt[T any](p *T) Ref[T] {
	return AdoptWith(p, DefaultDeleter[T]())
}

// AdoptWith is Adopt with a custom deleter. A nil deleter means no cleanup.
func AdoptWith[T any](p *T, del Deleter[T]) Ref[T] {
	if p == nil {
		return Ref[T]{}
	}
	return Ref[T]{cb: newBlock[*T](p, del)}
}

// Clone returns a new handle sharing ownership. The use count increases by
// one. Clone of an empty handle is empty.
func (r *Ref[T]) Clone() Ref[T] {
	if r.cb != nil {
		r.cb.retain()
	}
	return Ref[T]{cb: r.cb}
}

// Move transfers ownership to the returned handle. The receiver becomes
// empty and the use count does not change.
func (r *Ref[T]) Move() Ref[T] {
	cb := r.cb
	r.cb = nil
	return Ref[T]{cb: cb}
}

// Release gives up this handle's reference and empties it. When the last
// reference goes, the deleter runs synchronously before Release returns.
// Releasing an empty handle is a no-op.
func (r *Ref[T]) Release() {
	if r.cb == nil {
		return
	}
	cb := r.cb
	r.cb = nil
	cb.release()
}

// Reset releases the current resource and adopts p with the default
// deleter. Resetting to the pointer already held is a no-op, so the held
// resource is not released and re-adopted.
func (r *Ref[T]) Reset(p *T) {
	r.ResetWith(p, DefaultDeleter[T]())
}

// ResetWith is Reset with a custom deleter for the new resource.
func (r *Ref[T]) ResetWith(p *T, del Deleter[T]) {
	if p != nil && r.Get() == p {
		return
	}
	old := r.cb
	if p != nil {
		r.cb = newBlock[*T](p, del)
	} else {
		r.cb = nil
	}
	if old != nil {
		old.release()
	}
}

// Set is copy-assignment: release the current resource, then share other's.
// Assigning a handle to itself is a no-op.
func (r *Ref[T]) Set(other Ref[T]) {
	if r.cb == other.cb {
		return
	}
	if other.cb != nil {
		other.cb.retain()
	}
	old := r.cb
	r.cb = other.cb
	if old != nil {
		old.release()
	}
}

// SetPtr is raw-pointer assignment, equivalent to Reset with the default
// deleter.
func (r *Ref[T]) SetPtr(p *T) {
	r.Reset(p)
}

// Swap exchanges the managed resources of two handles in constant time.
// No allocation, no counter mutation.
func (r *Ref[T]) Swap(other *Ref[T]) {
	r.cb, other.cb = other.cb, r.cb
}

// Get returns the raw managed pointer, or nil for an empty handle. Never
// fails.
func (r *Ref[T]) Get() *T {
	if r.cb == nil {
		return nil
	}
	return r.cb.payload
}

// Value dereferences the managed pointer. Accessing an empty handle is a
// hard fault: Value panics with a structured *errors.Error rather than
// return a fabricated zero value.
func (r *Ref[T]) Value() T {
	if r.cb == nil {
		panic(errors.NilPointer(errors.PhaseAccess, "deref"))
	}
	return *r.cb.payload
}

// UseCount returns the number of live handles sharing the resource, or 0
// for an empty handle. Advisory only under concurrent use: the value may be
// stale the instant after reading.
func (r *Ref[T]) UseCount() int {
	if r.cb == nil {
		return 0
	}
	return r.cb.count()
}

// Unique reports whether this handle is the sole owner. Same advisory
// caveat as UseCount.
func (r *Ref[T]) Unique() bool {
	return r.UseCount() == 1
}

// Valid reports whether the handle currently owns a resource. This is the
// boolean null test.
func (r *Ref[T]) Valid() bool {
	return r.Get() != nil
}

// Equal reports whether two handles manage the same raw address. Two empty
// handles are equal; handles over different addresses are never equal, even
// when the pointees hold equal values.
func (r *Ref[T]) Equal(other *Ref[T]) bool {
	return r.Get() == other.Get()
}

// Swap exchanges two handles of the same variant. Free-function form of
// Ref.Swap for use by generic code written against handle pairs.
func Swap[T any](a, b *Ref[T]) {
	a.Swap(b)
}

// Equal is the free-function form of Ref.Equal.
func Equal[T any](a, b *Ref[T]) bool {
	return a.Equal(b)
}
