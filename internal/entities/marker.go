package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// QuestionMark is the decorative highlight an NPC floats above its head
// while the player is near. It has no behavior of its own; the owning NPC
// spawns and removes it.
type QuestionMark struct {
	engine.Base
}

func init() {
	engine.RegisterKind(engine.KindQuestionMark, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &QuestionMark{
			Base: engine.NewBase(id, engine.KindQuestionMark, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
		}
	})
}

// Update is a no-op.
func (q *QuestionMark) Update(_ []engine.Event, _ *engine.World) {}
