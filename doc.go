// Package sharedptr provides reference-counted shared-ownership handles
// for Go values, with exactly-once cleanup when the last owner disappears.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	sharedptr/       Root package with the Dropper and Releasable interfaces
//	├── ptr/         Control block and the Ref[T] / Arr[T] shared handles
//	├── track/       Live-handle registry with lifecycle events and logging
//	├── errors/      Structured error types for handle faults
//	└── cmd/demo/    Demo CLI with an interactive handle inspector
//
// # Quick Start
//
// Adopt a value and share it:
//
//	n := 10
//	a := ptr.Adopt(&n)
//	defer a.Release()
//
//	b := a.Clone() // a and b now jointly own n, UseCount() == 2
//	defer b.Release()
//
// When the last handle is released, the deleter bound at adoption time runs
// exactly once. The default deleter calls Drop or Close on the pointee when
// it implements sharedptr.Dropper or io.Closer.
//
// # Thread Safety
//
// The reference counter is atomic by default, so handles sharing one
// resource may be cloned and released from many goroutines. Building with
// the sharedptr_plain tag selects a plain integer counter for
// single-threaded or externally serialized use. The pointee itself is never
// synchronized by this layer.
package sharedptr
