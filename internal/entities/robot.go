package entities

import (
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
)

// Robot is the hazard entity: it drifts with a fixed velocity and bounces
// off the arena walls. Touching the player loses the game (checked by the
// game loop, not the robot).
type Robot struct {
	engine.Base

	dx, dy int
	arena  core.Rect

	// speedScale stretches movement under difficulty progression; applied
	// by accumulating fractional steps so low multipliers still move.
	speedScale float64
	accX, accY float64
}

func init() {
	engine.RegisterKind(engine.KindRobot, func(id engine.ID, opts engine.SpawnOpts) engine.Entity {
		return &Robot{
			Base:       engine.NewBase(id, engine.KindRobot, core.NewRect(opts.X, opts.Y, opts.W, opts.H)),
			dx:         opts.DX,
			dy:         opts.DY,
			arena:      opts.Arena,
			speedScale: 1.0,
		}
	})
}

// SetSpeedScale adjusts the robot's speed multiplier. Called by the game
// loop as difficulty progresses.
func (r *Robot) SetSpeedScale(scale float64) {
	if scale > 0 {
		r.speedScale = scale
	}
}

// Update advances the robot and reflects its velocity off the arena walls.
func (r *Robot) Update(_ []engine.Event, _ *engine.World) {
	r.accX += float64(r.dx) * r.speedScale
	r.accY += float64(r.dy) * r.speedScale

	stepX := int(r.accX)
	stepY := int(r.accY)
	r.accX -= float64(stepX)
	r.accY -= float64(stepY)

	r.Rect.X += stepX
	r.Rect.Y += stepY

	if r.Rect.X <= r.arena.X || r.Rect.Right() >= r.arena.Right() {
		r.dx = -r.dx
		r.Rect.X = core.Clamp(r.Rect.X, r.arena.X, r.arena.Right()-r.Rect.W)
	}
	if r.Rect.Y <= r.arena.Y || r.Rect.Bottom() >= r.arena.Bottom() {
		r.dy = -r.dy
		r.Rect.Y = core.Clamp(r.Rect.Y, r.arena.Y, r.arena.Bottom()-r.Rect.H)
	}
}

// Velocity returns the robot's current direction vector.
func (r *Robot) Velocity() (int, int) {
	return r.dx, r.dy
}
