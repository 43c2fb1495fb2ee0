package engine

import "fmt"

// World owns the collection of live entities for one game run. Entities are
// keyed by ID and iterated in registration order. The World also exposes the
// horizontal scroll offset side-view games use for camera movement.
//
// The World is driven by a single goroutine (the game loop); it is not safe
// for concurrent use and does not need to be.
type World struct {
	entities map[ID]Entity
	order    []ID
	nextID   ID
	bus      *Bus

	// byKind caches per-kind views; valid until the next spawn or removal.
	byKind map[Kind][]Entity

	scrollX int
}

// NewWorld creates an empty world posting events to the given bus.
func NewWorld(bus *Bus) *World {
	return &World{
		entities: make(map[ID]Entity),
		nextID:   1,
		bus:      bus,
		byKind:   make(map[Kind][]Entity),
	}
}

// Spawn creates and registers an entity of the given kind, returning its
// fresh identifier. IDs are never reused while the original entity is live.
// An unregistered kind is a programming error and is reported as one.
func (w *World) Spawn(kind Kind, opts SpawnOpts) (ID, error) {
	f, ok := factories[kind]
	if !ok {
		return NoID, fmt.Errorf("engine: cannot spawn unknown kind %q", kind)
	}

	id := w.nextID
	w.nextID++

	w.entities[id] = f(id, opts)
	w.order = append(w.order, id)
	w.invalidateViews()
	return id, nil
}

// MustSpawn is Spawn for kinds the caller knows are registered.
func (w *World) MustSpawn(kind Kind, opts SpawnOpts) ID {
	id, err := w.Spawn(kind, opts)
	if err != nil {
		panic(err)
	}
	return id
}

// Get returns the live entity for the ID. A false result means the ID is
// stale or unknown; callers recover by clearing their cached ID.
func (w *World) Get(id ID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Remove deregisters the entity. Removing an absent ID is a no-op.
func (w *World) Remove(id ID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	w.invalidateViews()
}

// ByKind returns the live entities of one kind in registration order.
// The returned slice is a view for the current tick only; it is invalidated
// by any spawn or removal and must not be retained across ticks.
func (w *World) ByKind(kind Kind) []Entity {
	if view, ok := w.byKind[kind]; ok {
		return view
	}
	var view []Entity
	for _, id := range w.order {
		if e, ok := w.entities[id]; ok && e.Kind() == kind {
			view = append(view, e)
		}
	}
	w.byKind[kind] = view
	return view
}

// First returns the single entity of a kind, or nil if none is live.
// Convenience for kinds with at most one instance (player, goal NPC).
func (w *World) First(kind Kind) Entity {
	if view := w.ByKind(kind); len(view) > 0 {
		return view[0]
	}
	return nil
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Post forwards an event to the bus owned by the game loop. Entities use
// this instead of mutating each other directly.
func (w *World) Post(e Event) {
	w.bus.Post(e)
}

// Tick runs the update phase: every entity live at the start of the tick is
// updated exactly once, in registration order, receiving the full event
// sequence delivered this tick.
//
// Entities may spawn and remove entities during their update. Removed
// entities are skipped by the remaining updates (their lookups fail), and
// entities spawned mid-tick are visible to lookups immediately but receive
// their first update on the next tick.
func (w *World) Tick(events []Event) {
	snapshot := make([]ID, len(w.order))
	copy(snapshot, w.order)

	for _, id := range snapshot {
		e, ok := w.entities[id]
		if !ok {
			continue // removed earlier this tick
		}
		e.Update(events, w)
	}

	w.compactOrder()
}

// compactOrder drops removed IDs from the iteration order. Registration
// order of the survivors is preserved.
func (w *World) compactOrder() {
	live := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.entities[id]; ok {
			live = append(live, id)
		}
	}
	w.order = live
}

func (w *World) invalidateViews() {
	clear(w.byKind)
}

// ScrollX returns how far the camera has scrolled right of the world origin.
func (w *World) ScrollX() int {
	return w.scrollX
}

// UpdateScroll shifts the camera by delta, clamped so the camera never moves
// left of the origin.
func (w *World) UpdateScroll(delta int) {
	w.scrollX += delta
	if w.scrollX < 0 {
		w.scrollX = 0
	}
}

// AtLeftMost reports whether the camera is at the world origin.
func (w *World) AtLeftMost() bool {
	return w.scrollX == 0
}
