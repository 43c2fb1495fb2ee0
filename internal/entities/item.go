package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// Item variants, used as the event payload on pickup.
const (
	ItemDiamondBlue = iota
	ItemDiamondRed
)

// GameItem is a collectible. Once collected it is hidden: excluded from
// overlap checks and no longer drawn, but it may stay registered so other
// entities holding its ID fail lookups gracefully only when removed.
type GameItem struct {
	engine.Base

	variant int
	hidden  bool
}

func init() {
	engine.RegisterKind(engine.KindItem, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &GameItem{
			Base:    engine.NewBase(id, engine.KindItem, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
			variant: opts.Variant,
		}
	})
}

// Update is a no-op; items are passive.
func (i *GameItem) Update(_ []engine.Event, _ *engine.World) {}

// Variant returns the item variant (diamond color).
func (i *GameItem) Variant() int {
	return i.variant
}

// Hidden reports whether the item has been collected.
func (i *GameItem) Hidden() bool {
	return i.hidden
}

// Collect hides the item. Collecting twice has no further effect.
func (i *GameItem) Collect() {
	i.hidden = true
}
