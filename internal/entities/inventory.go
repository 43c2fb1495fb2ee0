package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// InventoryDisplay is the HUD entity showing what the player has collected.
// It tracks pickups by listening for the broadcast EventItemCollected rather
// than reaching into the player, so the two stay decoupled.
type InventoryDisplay struct {
	engine.Base

	counts map[int]int
	total  int
}

func init() {
	engine.RegisterKind(engine.KindInventoryDisplay, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &InventoryDisplay{
			Base:   engine.NewBase(id, engine.KindInventoryDisplay, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
			counts: make(map[int]int),
		}
	})
}

// Update accumulates item pickups announced this tick.
func (d *InventoryDisplay) Update(events []engine.Event, _ *engine.World) {
	for _, e := range events {
		if !e.For(d.ID()) || !e.Is(engine.EventItemCollected) {
			continue
		}
		if variant, ok := e.Payload.(int); ok {
			d.counts[variant]++
			d.total++
		}
	}
}

// Count returns how many items of one variant have been collected.
func (d *InventoryDisplay) Count(variant int) int {
	return d.counts[variant]
}

// Total returns the total number of collected items.
func (d *InventoryDisplay) Total() int {
	return d.total
}
