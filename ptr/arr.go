package ptr

import (
	"unsafe"

	"github.com/zgrigoryan/shared-pointer/errors"
)

// Arr is a shared-ownership handle for a slice. The contract matches Ref
// except for adoption from a slice, indexed element access instead of
// dereference, and a cleanup action that runs per element by default. The
// cleanup strategy is fixed when the control block is created, never
// inferred later.
type Arr[T any] struct {
	cb *block[[]T]
}

// AdoptSlice takes exclusive ownership of s and returns a handle with use
// count 1, binding the default per-element deleter. A nil slice yields an
// empty handle.
func AdoptSlice[T any](s []T) Arr[T] {
	return AdoptSliceWith(s, DefaultArrDeleter[T]())
}

// AdoptSliceWith is AdoptSlice with a custom deleter for the whole slice.
// A nil deleter means no cleanup.
func AdoptSliceWith[T any](s []T, del ArrDeleter[T]) Arr[T] {
	if s == nil {
		return Arr[T]{}
	}
	return Arr[T]{cb: newBlock[[]T](s, del)}
}

// Clone returns a new handle sharing ownership. The use count increases by
// one. Clone of an empty handle is empty.
func (a *Arr[T]) Clone() Arr[T] {
	if a.cb != nil {
		a.cb.retain()
	}
	return Arr[T]{cb: a.cb}
}

// Move transfers ownership to the returned handle. The receiver becomes
// empty and the use count does not change.
func (a *Arr[T]) Move() Arr[T] {
	cb := a.cb
	a.cb = nil
	return Arr[T]{cb: cb}
}

// Release gives up this handle's reference and empties it. When the last
// reference goes, the deleter runs synchronously before Release returns.
// Releasing an empty handle is a no-op.
func (a *Arr[T]) Release() {
	if a.cb == nil {
		return
	}
	cb := a.cb
	a.cb = nil
	cb.release()
}

// Reset releases the current slice and adopts s with the default deleter.
// Resetting to the slice already held is a no-op.
func (a *Arr[T]) Reset(s []T) {
	a.ResetWith(s, DefaultArrDeleter[T]())
}

// ResetWith is Reset with a custom deleter for the new slice.
func (a *Arr[T]) ResetWith(s []T, del ArrDeleter[T]) {
	if s != nil && unsafe.SliceData(a.Slice()) == unsafe.SliceData(s) {
		return
	}
	old := a.cb
	if s != nil {
		a.cb = newBlock[[]T](s, del)
	} else {
		a.cb = nil
	}
	if old != nil {
		old.release()
	}
}

// Set is copy-assignment: release the current slice, then share other's.
// Assigning a handle to itself is a no-op.
func (a *Arr[T]) Set(other Arr[T]) {
	if a.cb == other.cb {
		return
	}
	if other.cb != nil {
		other.cb.retain()
	}
	old := a.cb
	a.cb = other.cb
	if old != nil {
		old.release()
	}
}

// Swap exchanges the managed slices of two handles in constant time. No
// allocation, no counter mutation.
func (a *Arr[T]) Swap(other *Arr[T]) {
	a.cb, other.cb = other.cb, a.cb
}

// Slice returns the raw managed slice, or nil for an empty handle. Never
// fails.
func (a *Arr[T]) Slice() []T {
	if a.cb == nil {
		return nil
	}
	return a.cb.payload
}

// At reads the element at index i. Accessing an empty handle is a hard
// fault and panics with a structured *errors.Error. Out-of-range indexes
// surface Go's native bounds panic; no bounds layer is added on top of the
// raw slice semantics.
func (a *Arr[T]) At(i int) T {
	if a.cb == nil {
		panic(errors.NilPointer(errors.PhaseAccess, "index"))
	}
	return a.cb.payload[i]
}

// SetAt writes the element at index i, with the same fault discipline as
// At.
func (a *Arr[T]) SetAt(i int, v T) {
	if a.cb == nil {
		panic(errors.NilPointer(errors.PhaseAccess, "index"))
	}
	a.cb.payload[i] = v
}

// Len returns the length of the managed slice, or 0 for an empty handle.
func (a *Arr[T]) Len() int {
	if a.cb == nil {
		return 0
	}
	return len(a.cb.payload)
}

// UseCount returns the number of live handles sharing the slice, or 0 for
// an empty handle. Advisory only under concurrent use.
func (a *Arr[T]) UseCount() int {
	if a.cb == nil {
		return 0
	}
	return a.cb.count()
}

// Unique reports whether this handle is the sole owner. Same advisory
// caveat as UseCount.
func (a *Arr[T]) Unique() bool {
	return a.UseCount() == 1
}

// Valid reports whether the handle currently owns a slice. This is the
// boolean null test.
func (a *Arr[T]) Valid() bool {
	return a.cb != nil
}

// Equal reports whether two handles manage the same backing array. Two
// empty handles are equal; handles over different arrays are never equal,
// even when the elements compare equal.
func (a *Arr[T]) Equal(other *Arr[T]) bool {
	return unsafe.SliceData(a.Slice()) == unsafe.SliceData(other.Slice())
}

// SwapArr is the free-function form of Arr.Swap.
func SwapArr[T any](a, b *Arr[T]) {
	a.Swap(b)
}

// EqualArr is the free-function form of Arr.Equal.
func EqualArr[T any](a, b *Arr[T]) bool {
	return a.Equal(b)
}
