package engine

// EventType enumerates the typed messages entities exchange through the Bus.
type EventType int

const (
	EventNone EventType = iota

	// Command events, synthesized by the game loop from player input and
	// addressed to the player entity.
	EventMoveLeft
	EventMoveRight
	EventMoveUp
	EventMoveDown
	EventJump
	EventActivate

	// Gameplay events posted by entities during their update.
	EventPlayerNearNpc     // player is overlapping an NPC; listener = the NPC
	EventPlayerActivateNpc // player started a conversation; listener = the NPC
	EventNpcDialogueEnd    // conversation finished; broadcast
	EventItemCollected     // player picked up an item; broadcast, payload = item variant
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventMoveLeft:
		return "move_left"
	case EventMoveRight:
		return "move_right"
	case EventMoveUp:
		return "move_up"
	case EventMoveDown:
		return "move_down"
	case EventJump:
		return "jump"
	case EventActivate:
		return "activate"
	case EventPlayerNearNpc:
		return "player_near_npc"
	case EventPlayerActivateNpc:
		return "player_activate_npc"
	case EventNpcDialogueEnd:
		return "npc_dialogue_end"
	case EventItemCollected:
		return "item_collected"
	default:
		return "none"
	}
}

// Event is a typed message between entities. Listener selects a single
// recipient; NoID broadcasts to every entity. Payload carries optional
// event-specific data.
type Event struct {
	Type     EventType
	Listener ID
	Payload  any
}

// Is reports whether the event has the given type.
func (e Event) Is(t EventType) bool {
	return e.Type == t
}

// For reports whether the entity with the given ID should act on this
// event: either it is a broadcast or it is addressed to that entity.
func (e Event) For(id ID) bool {
	return e.Listener == NoID || e.Listener == id
}

// Bus is the per-run event queue. Posting never delivers synchronously:
// the game loop drains the queue once at the top of each tick and hands the
// drained slice to every entity update. Events posted during an update are
// therefore delivered on the next tick, and no event is delivered twice.
type Bus struct {
	pending []Event
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Post appends an event to the pending queue.
func (b *Bus) Post(e Event) {
	b.pending = append(b.pending, e)
}

// Drain removes and returns all pending events in posting order.
func (b *Bus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

// Len returns the number of pending events.
func (b *Bus) Len() int {
	return len(b.pending)
}
