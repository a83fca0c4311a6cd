package track

// ID identifies a tracked resource in a registry.
// ID 0 is reserved and always invalid.
type ID uint32

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventAdopted EventType = iota
	EventShared
	EventReleased
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventAdopted:
		return "adopted"
	case EventShared:
		return "shared"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event. Refs is the registry's view of
// the use count after the transition.
type Event struct {
	Label string
	ID    ID
	Refs  int
	Type  EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}
