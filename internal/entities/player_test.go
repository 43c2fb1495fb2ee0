package entities

import (
	"testing"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

func spawnPlayer(t *testing.T, w *engine.World, opts engine.SpawnOpts) *Player {
	t.Helper()
	if opts.W == 0 {
		opts.W, opts.H = 2, 2
	}
	id, err := w.Spawn(engine.KindPlayer, opts)
	if err != nil {
		t.Fatalf("Spawn(player) failed: %v", err)
	}
	e, _ := w.Get(id)
	return e.(*Player)
}

func command(t engine.EventType, player engine.ID) engine.Event {
	return engine.Event{Type: t, Listener: player}
}

func TestPlayerTopDownMovement(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	p := spawnPlayer(t, w, engine.SpawnOpts{
		X: 10, Y: 10, Speed: 2,
		Arena: core.NewRect(0, 0, 80, 24),
	})

	tests := []struct {
		name   string
		cmd    engine.EventType
		wantX  int
		wantY  int
	}{
		{"move right", engine.EventMoveRight, 12, 10},
		{"move down", engine.EventMoveDown, 12, 12},
		{"move left", engine.EventMoveLeft, 10, 12},
		{"move up", engine.EventMoveUp, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w.Tick([]engine.Event{command(tc.cmd, p.ID())})
			if p.Rect.X != tc.wantX || p.Rect.Y != tc.wantY {
				t.Errorf("position = (%d, %d), expected (%d, %d)", p.Rect.X, p.Rect.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestPlayerClampedToArena(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	p := spawnPlayer(t, w, engine.SpawnOpts{
		X: 0, Y: 0, Speed: 5,
		Arena: core.NewRect(0, 0, 20, 10),
	})

	for i := 0; i < 10; i++ {
		w.Tick([]engine.Event{command(engine.EventMoveLeft, p.ID())})
	}
	if p.Rect.X != 0 {
		t.Errorf("X = %d after walking into the left wall, expected 0", p.Rect.X)
	}

	for i := 0; i < 10; i++ {
		w.Tick([]engine.Event{command(engine.EventMoveRight, p.ID())})
	}
	if p.Rect.X != 20-p.Rect.W {
		t.Errorf("X = %d after walking into the right wall, expected %d", p.Rect.X, 20-p.Rect.W)
	}
}

func TestPlayerJumpAndLand(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	arena := core.NewRect(0, 0, 80, 20)
	p := spawnPlayer(t, w, engine.SpawnOpts{
		X: 5, Y: 18, Speed: 1,
		Gravity: 0.5, JumpImpulse: -2.0, MaxFallSpeed: 2.0,
		Arena: arena,
	})

	// Settle onto the floor first
	w.Tick(nil)
	floor := arena.Bottom() - p.Rect.H
	if p.Rect.Y != floor || !p.OnGround() {
		t.Fatalf("player should rest on the floor at y=%d, got y=%d", floor, p.Rect.Y)
	}

	w.Tick([]engine.Event{command(engine.EventJump, p.ID())})
	if p.Rect.Y >= floor {
		t.Error("player should rise after a jump")
	}
	if p.OnGround() {
		t.Error("player should be airborne after a jump")
	}

	// Gravity brings it back down eventually
	for i := 0; i < 50 && !p.OnGround(); i++ {
		w.Tick(nil)
	}
	if !p.OnGround() || p.Rect.Y != floor {
		t.Errorf("player should land back on the floor, got y=%d onGround=%v", p.Rect.Y, p.OnGround())
	}
}

func TestPlayerMovementLockedWhileTalking(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	p := spawnPlayer(t, w, engine.SpawnOpts{X: 10, Y: 10, Speed: 2, Arena: core.NewRect(0, 0, 80, 24)})

	npcID := w.MustSpawn(engine.KindFriendlyNpc, engine.SpawnOpts{
		X: 10, Y: 10, W: 2, H: 3,
		Lines: []string{"hi"},
	})

	// Player overlaps the NPC; activate starts the conversation
	w.Tick([]engine.Event{command(engine.EventActivate, p.ID())})
	if !p.Talking() {
		t.Fatal("player should be talking after activating an adjacent NPC")
	}

	// The activation reaches the NPC on the next tick
	w.Tick(bus.Drain())
	e, _ := w.Get(npcID)
	npc := e.(*FriendlyNpc)
	if !npc.InDialogue() {
		t.Fatal("NPC should be in dialogue after receiving the activation")
	}

	x := p.Rect.X
	w.Tick([]engine.Event{command(engine.EventMoveRight, p.ID())})
	if p.Rect.X != x {
		t.Error("movement must be ignored while talking")
	}

	// A second activation steps past the single dialogue line and ends the
	// conversation; the broadcast end event frees the player a tick later.
	w.Tick([]engine.Event{command(engine.EventActivate, p.ID())})
	w.Tick(bus.Drain()) // NPC ends the dialogue, posts EventNpcDialogueEnd
	if npc.InDialogue() {
		t.Fatal("dialogue should have ended")
	}
	w.Tick(bus.Drain()) // player receives the end event
	if p.Talking() {
		t.Error("player should stop talking after the dialogue ends")
	}
}

func TestPlayerPostsProximityEventToNpc(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	spawnPlayer(t, w, engine.SpawnOpts{X: 10, Y: 10, Speed: 1, Arena: core.NewRect(0, 0, 80, 24)})
	npcID := w.MustSpawn(engine.KindFriendlyNpc, engine.SpawnOpts{X: 11, Y: 10, W: 2, H: 3})

	w.Tick(nil)

	events := bus.Drain()
	found := false
	for _, e := range events {
		if e.Is(engine.EventPlayerNearNpc) && e.Listener == npcID {
			found = true
		}
	}
	if !found {
		t.Error("overlapping an NPC should post EventPlayerNearNpc addressed to it")
	}
}

func TestPlayerCollectsInventoryFromEvents(t *testing.T) {
	bus := engine.NewBus()
	w := engine.NewWorld(bus)
	p := spawnPlayer(t, w, engine.SpawnOpts{X: 0, Y: 0, Speed: 1})

	w.Tick([]engine.Event{
		{Type: engine.EventItemCollected, Payload: ItemDiamondRed},
		{Type: engine.EventItemCollected, Payload: ItemDiamondBlue},
	})

	inv := p.Inventory()
	if len(inv) != 2 {
		t.Fatalf("inventory has %d entries, expected 2", len(inv))
	}
	if inv[0] != ItemDiamondRed || inv[1] != ItemDiamondBlue {
		t.Errorf("inventory = %v, expected pickup order preserved", inv)
	}
}
