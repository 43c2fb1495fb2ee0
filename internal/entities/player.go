// Package entities implements the concrete entity kinds used by the quest
// games. Each kind registers its factory with the engine so worlds can spawn
// entities by kind; games import this package for the side effect.
package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// Player is the user-controlled character. It consumes the command events
// the game loop synthesizes from input, tracks the NPC it stands next to,
// and keeps the inventory of collected items.
//
// With Gravity > 0 the player is a side-view jumper; otherwise it moves
// freely in four directions (top-down games).
type Player struct {
	engine.Base

	speed        int
	gravity      float64
	jumpImpulse  float64
	maxFallSpeed float64
	arena        core.Rect

	vy       float64
	onGround bool

	talking   bool
	npcNearBy engine.ID // re-resolved every tick, never trusted across ticks

	inventory []int // collected item variants, in pickup order

	// Horizontal movement applied this tick, consumed by the game for
	// scroll-offset handling.
	lastDX int
}

func init() {
	engine.RegisterKind(engine.KindPlayer, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &Player{
			Base:         engine.NewBase(id, engine.KindPlayer, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
			speed:        opts.Speed,
			gravity:      opts.Gravity,
			jumpImpulse:  opts.JumpImpulse,
			maxFallSpeed: opts.MaxFallSpeed,
			arena:        opts.Arena,
		}
	})
}

// Update consumes this tick's events and advances the player's motion.
func (p *Player) Update(events []engine.Event, w *engine.World) {
	p.lastDX = 0
	p.updateNpcNearBy(w)
	p.handleEvents(events, w)
	p.applyGravity()
	p.clampToArena()
}

func (p *Player) handleEvents(events []engine.Event, w *engine.World) {
	for _, e := range events {
		if !e.For(p.ID()) {
			continue
		}

		// Movement is locked while talking to an NPC.
		if !p.talking {
			switch e.Type {
			case engine.EventMoveLeft:
				p.moveX(-p.speed)
			case engine.EventMoveRight:
				p.moveX(p.speed)
			case engine.EventMoveUp:
				if p.gravity == 0 {
					p.Rect.Y -= p.speed
				}
			case engine.EventMoveDown:
				if p.gravity == 0 {
					p.Rect.Y += p.speed
				}
			case engine.EventJump:
				p.jump()
			}
		}

		switch e.Type {
		case engine.EventActivate:
			p.activateNpc(w)
		case engine.EventNpcDialogueEnd:
			p.talking = false
		case engine.EventItemCollected:
			if variant, ok := e.Payload.(int); ok {
				p.inventory = append(p.inventory, variant)
			}
		}
	}
}

func (p *Player) moveX(dx int) {
	p.Rect.X += dx
	p.lastDX += dx
}

func (p *Player) jump() {
	if p.gravity > 0 && p.onGround {
		p.vy = p.jumpImpulse
		p.onGround = false
	}
}

func (p *Player) applyGravity() {
	if p.gravity == 0 {
		return
	}

	p.vy += p.gravity
	if p.vy > p.maxFallSpeed {
		p.vy = p.maxFallSpeed
	}
	p.Rect.Y += int(p.vy)

	// Land on the arena floor
	if floor := p.arena.Bottom() - p.Rect.H; p.Rect.Y >= floor {
		p.Rect.Y = floor
		p.vy = 0
		p.onGround = true
	}
}

func (p *Player) clampToArena() {
	if p.arena.W == 0 && p.arena.H == 0 {
		return
	}
	p.Rect.X = core.Clamp(p.Rect.X, p.arena.X, p.arena.Right()-p.Rect.W)
	p.Rect.Y = core.Clamp(p.Rect.Y, p.arena.Y, p.arena.Bottom()-p.Rect.H)
}

// updateNpcNearBy re-resolves the adjacent NPC from scratch each tick and
// notifies it. Holding the previous tick's ID would risk a stale reference.
func (p *Player) updateNpcNearBy(w *engine.World) {
	p.npcNearBy = engine.NoID
	// The player lives in camera coordinates in scrolling games; shift into
	// world coordinates before comparing against NPC bounds.
	bounds := p.Bounds().Translate(w.ScrollX(), 0)
	for _, npc := range w.ByKind(engine.KindFriendlyNpc) {
		if bounds.Intersects(npc.Bounds()) {
			p.npcNearBy = npc.ID()
			w.Post(engine.Event{Type: engine.EventPlayerNearNpc, Listener: npc.ID()})
			break
		}
	}
}

func (p *Player) activateNpc(w *engine.World) {
	if p.npcNearBy == engine.NoID {
		return
	}
	if _, ok := w.Get(p.npcNearBy); !ok {
		p.npcNearBy = engine.NoID // stale, drop it
		return
	}
	w.Post(engine.Event{Type: engine.EventPlayerActivateNpc, Listener: p.npcNearBy})
	p.talking = true // cleared again by EventNpcDialogueEnd
}

// Talking reports whether the player is in a conversation.
func (p *Player) Talking() bool {
	return p.talking
}

// Inventory returns the collected item variants in pickup order.
func (p *Player) Inventory() []int {
	return p.inventory
}

// LastDX returns the horizontal movement applied during the last update.
// Side-view games use it to drive the world scroll offset.
func (p *Player) LastDX() int {
	return p.lastDX
}

// UndoMoveX walks the player back by its last horizontal movement. Used when
// the world scrolls instead of the player (walk-in-place at screen edges).
func (p *Player) UndoMoveX() {
	p.Rect.X -= p.lastDX
}

// OnGround reports whether the player is standing on the arena floor.
func (p *Player) OnGround() bool {
	return p.onGround
}
