// Package track provides a live-handle registry over the ptr handles.
//
// The registry is optional diagnostics: the ptr package is complete without
// it and never depends on it. Adopting through the registry wraps the
// deleter so the registry observes the destruction of each resource, giving
// the embedding application a live view of outstanding shared ownership and
// a leak report at shutdown.
//
// # Lifecycle Events
//
// Observers receive one event per ownership transition:
//
//	EventAdopted    a resource entered the registry (use count 1)
//	EventShared     a tracked handle was cloned
//	EventReleased   a tracked handle gave up its reference
//	EventDestroyed  the last reference went away and cleanup ran
//
// Register an observer to follow the lifecycle:
//
//	reg := track.NewRegistry()
//	reg.Subscribe(track.NewLogObserver(logger))
//
//	n := 10
//	h, id, err := track.Adopt(reg, "config", &n)
//	...
//	track.Release(reg, id, &h)
//
// # Logging
//
// The package logger defaults to a no-op zap logger; wire a real one with
// SetLogger before creating registries. Close logs a warning naming the
// leaked entries when live handles remain.
package track
