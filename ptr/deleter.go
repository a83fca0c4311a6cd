package ptr

import (
	"io"

	sharedptr "github.com/zgrigoryan/shared-pointer"
)

// Deleter is a cleanup action invocable with the raw managed pointer. It
// runs exactly once, during the release that drops the last reference, and
// must not panic.
type Deleter[T any] func(*T)

// ArrDeleter is the slice-variant cleanup action.
type ArrDeleter[T any] func([]T)

// DefaultDeleter calls Drop or Close on the pointee when it implements
// sharedptr.Dropper or io.Closer, and does nothing otherwise. Values
// without cleanup needs are simply left to the garbage collector.
func DefaultDeleter[T any]() Deleter[T] {
	return func(p *T) {
		dropValue(p)
	}
}

// DefaultArrDeleter drops each element in order, the slice analogue of
// per-element destruction.
func DefaultArrDeleter[T any]() ArrDeleter[T] {
	return func(s []T) {
		for i := range s {
			dropValue(&s[i])
		}
	}
}

// NopDeleter never cleans up. Useful for adopting values whose lifetime is
// managed elsewhere while still sharing them through counted handles.
func NopDeleter[T any](*T) {}

// dropValue dispatches cleanup through the pointer's method set, which
// covers both value and pointer receivers on T.
func dropValue(v any) {
	switch x := v.(type) {
	case sharedptr.Dropper:
		x.Drop()
	case io.Closer:
		_ = x.Close()
	}
}

// Both handle variants expose the common release surface.
var (
	_ sharedptr.Releasable = (*Ref[int])(nil)
	_ sharedptr.Releasable = (*Arr[int])(nil)
)
