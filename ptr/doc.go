// Package ptr implements reference-counted shared-ownership handles.
//
// Two handle variants share one counting skeleton: Ref[T] owns a single
// value through a *T, and Arr[T] owns a []T with per-element cleanup. Every
// handle wraps a heap-allocated control block holding the managed pointer,
// the reference counter, and the cleanup action bound at adoption time.
//
// # Lifecycle
//
//	n := 10
//	a := ptr.Adopt(&n)    // control block created, count 1
//	b := a.Clone()        // shared, count 2
//	c := b.Move()         // transferred, b now empty, count still 2
//	c.Release()           // count 1
//	a.Release()           // count 0: deleter runs exactly once
//
// Adoption transfers exclusive ownership of the raw pointer to the handle.
// Adopting the same pointer into two independent handles is a caller
// contract violation the type cannot detect; the deleter would run twice.
//
// # Cleanup
//
// The deleter is bound when the control block is created and invoked with
// the raw pointer exactly once, when the counter drops to zero. The
// default deleter calls Drop or Close when the pointee implements
// sharedptr.Dropper or io.Closer, and does nothing otherwise. Deleters must
// not panic; they run during release and have no error path.
//
// # Counter representation
//
// The counter is atomic by default. Building with the sharedptr_plain tag
// substitutes a plain integer, valid only when all handles sharing a block
// are confined to one goroutine or externally serialized. The toggle is
// fixed for the whole build; the two representations are never mixed.
package ptr
