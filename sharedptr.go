package sharedptr

// Dropper is implemented by values that need explicit cleanup when the
// last handle owning them is released.
type Dropper interface {
	Drop()
}

// Releasable is the minimal surface every shared handle variant exposes.
// Both ptr.Ref and ptr.Arr satisfy it.
type Releasable interface {
	// Release gives up this handle's reference. The bound cleanup action
	// runs exactly once, when the final reference is released.
	Release()

	// UseCount returns the number of live handles sharing the resource,
	// or 0 for an empty handle. Advisory only under concurrent use.
	UseCount() int

	// Valid reports whether the handle currently owns a resource.
	Valid() bool
}
