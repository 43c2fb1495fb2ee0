package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// FriendlyNpc talks to the player. While the player stands next to it, the
// NPC highlights itself by spawning a question-mark marker above its head;
// activation walks through its dialogue one line per activation, ending
// with a broadcast EventNpcDialogueEnd that returns control to the player.
type FriendlyNpc struct {
	engine.Base

	lines []string

	isNearPlayer bool
	markerID     engine.ID

	inDialogue bool
	lineIndex  int
}

func init() {
	engine.RegisterKind(engine.KindFriendlyNpc, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &FriendlyNpc{
			Base:  engine.NewBase(id, engine.KindFriendlyNpc, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
			lines: opts.Lines,
		}
	})
}

// Update processes the events addressed to this NPC and manages the
// highlight marker.
func (n *FriendlyNpc) Update(events []engine.Event, w *engine.World) {
	// Proximity does not persist: the player re-announces it every tick.
	n.isNearPlayer = false

	for _, e := range events {
		if e.Listener != n.ID() {
			continue // only events addressed to this NPC matter here
		}
		switch e.Type {
		case engine.EventPlayerNearNpc:
			n.isNearPlayer = true
		case engine.EventPlayerActivateNpc:
			n.advanceDialogue(w)
		}
	}

	if n.isNearPlayer && !n.inDialogue {
		n.highlight(w)
	} else {
		n.unhighlight(w)
	}
}

func (n *FriendlyNpc) advanceDialogue(w *engine.World) {
	if !n.inDialogue {
		if len(n.lines) == 0 {
			w.Post(engine.Event{Type: engine.EventNpcDialogueEnd})
			return
		}
		n.inDialogue = true
		n.lineIndex = 0
		return
	}

	n.lineIndex++
	if n.lineIndex >= len(n.lines) {
		n.inDialogue = false
		n.lineIndex = 0
		w.Post(engine.Event{Type: engine.EventNpcDialogueEnd})
	}
}

func (n *FriendlyNpc) highlight(w *engine.World) {
	if n.markerID != engine.NoID {
		if _, ok := w.Get(n.markerID); ok {
			return
		}
		n.markerID = engine.NoID // marker vanished; recover and respawn
	}

	cx, _ := n.Bounds().Center()
	n.markerID = w.MustSpawn(engine.KindQuestionMark, engine.SpawnOpts{
		X: cx,
		Y: n.Rect.Y - 2,
		W: 1,
		H: 1,
	})
}

func (n *FriendlyNpc) unhighlight(w *engine.World) {
	if n.markerID == engine.NoID {
		return
	}
	w.Remove(n.markerID)
	n.markerID = engine.NoID
}

// IsNearPlayer reports whether the player announced proximity this tick.
func (n *FriendlyNpc) IsNearPlayer() bool {
	return n.isNearPlayer
}

// InDialogue reports whether a conversation is in progress.
func (n *FriendlyNpc) InDialogue() bool {
	return n.inDialogue
}

// CurrentLine returns the dialogue line being shown, if any.
func (n *FriendlyNpc) CurrentLine() (string, bool) {
	if !n.inDialogue || n.lineIndex >= len(n.lines) {
		return "", false
	}
	return n.lines[n.lineIndex], true
}
