package track

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zgrigoryan/shared-pointer/errors"
	"github.com/zgrigoryan/shared-pointer/ptr"
)

// ErrClosed is returned when adopting through a closed registry.
var ErrClosed = errors.Closed("registry")

// Registry tracks live adoptions. Entries are created by Adopt and removed
// when the wrapped deleter observes the destruction of the resource, so
// Len reports resources whose cleanup has not yet run.
type Registry struct {
	entries   []entry
	freeList  []ID
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	label   string
	adopted time.Time
	refs    int
	valid   bool
}

// Entry is a snapshot of one live tracked resource.
type Entry struct {
	Label     string
	AdoptedAt time.Time
	ID        ID
	Refs      int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make([]entry, 0, 64),
		freeList: make([]ID, 0, 16),
	}
}

// Adopt adopts p into a tracked handle with the default deleter. A nil p
// yields an empty handle, ID 0 and no entry.
func Adopt[T any](reg *Registry, label string, p *T) (ptr.Ref[T], ID, error) {
	return AdoptWith(reg, label, p, ptr.DefaultDeleter[T]())
}

// AdoptWith is Adopt with a custom deleter. The deleter is wrapped so the
// registry drops the entry when cleanup runs; the wrapped action still runs
// exactly once, with the original pointer.
func AdoptWith[T any](reg *Registry, label string, p *T, del ptr.Deleter[T]) (ptr.Ref[T], ID, error) {
	if p == nil {
		return ptr.Ref[T]{}, 0, nil
	}

	id, err := reg.register(label)
	if err != nil {
		return ptr.Ref[T]{}, 0, err
	}

	h := ptr.AdoptWith(p, func(q *T) {
		if del != nil {
			del(q)
		}
		reg.destroyed(id)
	})

	reg.notify(Event{Type: EventAdopted, ID: id, Label: label, Refs: 1})
	return h, id, nil
}

// AdoptSlice adopts s into a tracked slice handle with the default
// per-element deleter.
func AdoptSlice[T any](reg *Registry, label string, s []T) (ptr.Arr[T], ID, error) {
	return AdoptSliceWith(reg, label, s, ptr.DefaultArrDeleter[T]())
}

// AdoptSliceWith is AdoptSlice with a custom deleter.
func AdoptSliceWith[T any](reg *Registry, label string, s []T, del ptr.ArrDeleter[T]) (ptr.Arr[T], ID, error) {
	if s == nil {
		return ptr.Arr[T]{}, 0, nil
	}

	id, err := reg.register(label)
	if err != nil {
		return ptr.Arr[T]{}, 0, err
	}

	h := ptr.AdoptSliceWith(s, func(v []T) {
		if del != nil {
			del(v)
		}
		reg.destroyed(id)
	})

	reg.notify(Event{Type: EventAdopted, ID: id, Label: label, Refs: 1})
	return h, id, nil
}

// Share clones a tracked handle and records the new reference.
func Share[T any](reg *Registry, id ID, h *ptr.Ref[T]) ptr.Ref[T] {
	c := h.Clone()
	if c.Valid() {
		reg.shared(id)
	}
	return c
}

// Release releases a tracked handle and records the dropped reference. The
// registry reference is recorded before the handle release so the Released
// event precedes a Destroyed event from the same call.
func Release[T any](reg *Registry, id ID, h *ptr.Ref[T]) {
	if !h.Valid() {
		return
	}
	reg.released(id)
	h.Release()
}

// ShareArr is Share for slice handles.
func ShareArr[T any](reg *Registry, id ID, h *ptr.Arr[T]) ptr.Arr[T] {
	c := h.Clone()
	if c.Valid() {
		reg.shared(id)
	}
	return c
}

// ReleaseArr is Release for slice handles.
func ReleaseArr[T any](reg *Registry, id ID, h *ptr.Arr[T]) {
	if !h.Valid() {
		return
	}
	reg.released(id)
	h.Release()
}

// Len returns the number of live tracked resources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Live returns snapshots of all live tracked resources.
func (r *Registry) Live() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entry
	for i, e := range r.entries {
		if e.valid {
			out = append(out, Entry{
				ID:        ID(i + 1),
				Label:     e.label,
				Refs:      e.refs,
				AdoptedAt: e.adopted,
			})
		}
	}
	return out
}

// Each iterates over all live tracked resources.
func (r *Registry) Each(fn func(Entry) bool) {
	for _, e := range r.Live() {
		if !fn(e) {
			break
		}
	}
}

// Get returns the snapshot for one tracked resource.
func (r *Registry) Get(id ID) (Entry, bool) {
	if id == 0 {
		return Entry{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := int(id) - 1
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return Entry{}, false
	}
	e := r.entries[idx]
	return Entry{ID: id, Label: e.label, Refs: e.refs, AdoptedAt: e.adopted}, true
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close stops accepting adoptions. Tracked resources still live are leaks
// from the registry's point of view: they are logged and left alone, since
// their handles remain valid and will still clean up normally.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	leaked := 0
	for i, e := range r.entries {
		if e.valid {
			leaked++
			Logger().Warn("handle still live at registry close",
				zap.Uint32("id", uint32(i+1)),
				zap.String("label", e.label),
				zap.Int("refs", e.refs),
			)
		}
	}
	if leaked > 0 {
		Logger().Warn("registry closed with live handles", zap.Int("leaked", leaked))
	}
	return nil
}

func (r *Registry) register(label string) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrClosed
	}

	e := entry{
		label:   label,
		adopted: time.Now(),
		refs:    1,
		valid:   true,
	}

	if len(r.freeList) > 0 {
		id := r.freeList[len(r.freeList)-1]
		r.freeList = r.freeList[:len(r.freeList)-1]
		r.entries[id-1] = e
		return id, nil
	}

	r.entries = append(r.entries, e)
	return ID(len(r.entries)), nil
}

func (r *Registry) shared(id ID) {
	label, refs, ok := r.adjust(id, 1)
	if !ok {
		return
	}
	r.notify(Event{Type: EventShared, ID: id, Label: label, Refs: refs})
}

func (r *Registry) released(id ID) {
	label, refs, ok := r.adjust(id, -1)
	if !ok {
		return
	}
	r.notify(Event{Type: EventReleased, ID: id, Label: label, Refs: refs})
}

func (r *Registry) adjust(id ID, delta int) (string, int, bool) {
	if id == 0 {
		return "", 0, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := int(id) - 1
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return "", 0, false
	}
	r.entries[idx].refs += delta
	return r.entries[idx].label, r.entries[idx].refs, true
}

func (r *Registry) destroyed(id ID) {
	if id == 0 {
		return
	}

	r.mu.Lock()
	idx := int(id) - 1
	if idx >= len(r.entries) || !r.entries[idx].valid {
		r.mu.Unlock()
		return
	}
	label := r.entries[idx].label
	r.entries[idx] = entry{}
	r.freeList = append(r.freeList, id)
	r.mu.Unlock()

	r.notify(Event{Type: EventDestroyed, ID: id, Label: label, Refs: 0})
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnHandleEvent(e)
	}
}
