// Package engine implements the shared simulation core for the quest games:
// a registry of uniquely identified entities (World), a typed event queue
// drained once per tick (Bus), and the score/phase state machine (Session).
// The engine is single-threaded: one game loop drives update, collision and
// render phases in order, so no locking is needed.
package engine

import (
	"fmt"

	"github.com/steamvn/tui-quest/internal/core"
)

// ID identifies a live entity registered with a World. An ID is valid only
// while its entity is registered; after removal, lookups fail and callers
// are expected to drop any cached copy.
type ID int

// NoID marks the absence of an entity. Events with Listener == NoID are
// broadcast to every entity.
const NoID ID = 0

// Kind enumerates the entity kinds known to the quest games.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlayer
	KindRobot
	KindItem
	KindFriendlyNpc
	KindQuestionMark
	KindInventoryDisplay
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindRobot:
		return "robot"
	case KindItem:
		return "item"
	case KindFriendlyNpc:
		return "friendly_npc"
	case KindQuestionMark:
		return "question_mark"
	case KindInventoryDisplay:
		return "inventory_display"
	default:
		return "unknown"
	}
}

// Entity is a positioned, sized game object with per-kind behavior.
// Update is called exactly once per tick, in registration order, with the
// full event sequence delivered this tick. Implementations may spawn and
// remove entities during Update; see World.Tick for the ordering rules.
type Entity interface {
	ID() ID
	Kind() Kind
	Bounds() core.Rect
	Update(events []Event, w *World)
}

// Base carries the identity and bounds every entity shares. Concrete
// entities embed it and mutate Rect to move.
type Base struct {
	id   ID
	kind Kind

	Rect core.Rect
}

// NewBase creates the embedded core of an entity.
func NewBase(id ID, kind Kind, rect core.Rect) Base {
	return Base{id: id, kind: kind, Rect: rect}
}

// ID returns the entity's identifier.
func (b *Base) ID() ID {
	return b.id
}

// Kind returns the entity's kind.
func (b *Base) Kind() Kind {
	return b.kind
}

// Bounds returns the entity's current bounding rectangle.
func (b *Base) Bounds() core.Rect {
	return b.Rect
}

// SpawnOpts carries the spawn parameters a factory may use. These are the
// resolved per-kind constants from configuration plus the spawn position;
// fields not meaningful for a kind are ignored.
type SpawnOpts struct {
	X, Y   int
	DX, DY int
	W, H   int

	// Movement tuning for movers.
	Speed        int
	Gravity      float64
	JumpImpulse  float64
	MaxFallSpeed float64
	Arena        core.Rect // bounds movers stay inside; zero means unbounded

	Variant int      // kind-specific variant (e.g. item sprite)
	Lines   []string // dialogue lines, FriendlyNpc only
}

// Factory constructs an entity of one kind. Factories self-register from
// the entities package init functions.
type Factory func(id ID, opts SpawnOpts) Entity

var factories = make(map[Kind]Factory)

// RegisterKind adds a factory for a kind. Panics if the kind is already
// registered; kinds are wired once at program start.
func RegisterKind(k Kind, f Factory) {
	if _, exists := factories[k]; exists {
		panic(fmt.Sprintf("engine: kind %q already registered", k))
	}
	factories[k] = f
}
