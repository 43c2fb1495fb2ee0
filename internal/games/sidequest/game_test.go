package sidequest

import (
	"testing"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
	"github.com/steamvn/tui-quest/internal/entities"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(seed))
	if g.tooSmall {
		t.Fatal("test screen should not be too small")
	}
	return g
}

// settle drops the player onto the floor in world column worldX. The scroll
// offset is adjusted so the column is on screen.
func settle(t *testing.T, g *Game, worldX int) *entities.Player {
	t.Helper()
	p := g.player()
	if p == nil {
		t.Fatal("player missing from world")
	}
	scroll := core.Clamp(worldX-g.screenW/2, 0, g.worldW-g.screenW)
	g.world.UpdateScroll(scroll - g.world.ScrollX())
	p.Rect.X = worldX - scroll
	p.Rect.Y = g.groundY() - p.Rect.H
	return p
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		inputs[i].Set(core.ActionRight)
		if i%25 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() (core.GameState, int, core.Rect) {
		g := New()
		g.Reset(testConfig(99))
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.world.ScrollX(), g.player().Bounds()
	}

	state1, scroll1, pos1 := run()
	state2, scroll2, pos2 := run()

	if state1 != state2 || scroll1 != scroll2 || pos1 != pos2 {
		t.Errorf("runs diverged: (%+v,%d,%+v) vs (%+v,%d,%+v)",
			state1, scroll1, pos1, state2, scroll2, pos2)
	}
}

func TestCameraScrollsAtRightSoftEdge(t *testing.T) {
	g := newTestGame(t, 1)
	p := g.player()
	p.Rect.X = g.screenW - g.cfg.Player.SoftEdgeWidth
	p.Rect.Y = g.groundY() - p.Rect.H

	before := p.Rect.X
	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)

	if g.world.ScrollX() == 0 {
		t.Error("walking into the right soft edge should scroll the camera")
	}
	if p.Rect.X != before {
		t.Errorf("player should walk in place while scrolling, x %d -> %d", before, p.Rect.X)
	}
}

func TestCameraStaysAtWorldOrigin(t *testing.T) {
	g := newTestGame(t, 1)
	p := g.player()
	p.Rect.X = 2
	p.Rect.Y = g.groundY() - p.Rect.H

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	for i := 0; i < 10; i++ {
		g.Step(in)
	}

	if !g.world.AtLeftMost() {
		t.Errorf("camera moved left of the world origin, scroll=%d", g.world.ScrollX())
	}
	if p.Rect.X != 0 {
		t.Errorf("player should be clamped at the screen edge, x=%d", p.Rect.X)
	}
}

func TestCameraStopsAtWorldEnd(t *testing.T) {
	g := newTestGame(t, 1)
	maxScroll := g.worldW - g.screenW
	settle(t, g, g.worldW-g.screenW/2)

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	for i := 0; i < 200; i++ {
		if g.Step(in).State.GameOver {
			break
		}
	}

	if got := g.world.ScrollX(); got > maxScroll {
		t.Errorf("camera scrolled past the world end: %d > %d", got, maxScroll)
	}
}

func TestItemPickupScoresAndBroadcasts(t *testing.T) {
	g := newTestGame(t, 4)

	items := g.world.ByKind(engine.KindItem)
	if len(items) == 0 {
		t.Fatal("no items spawned")
	}
	item := items[0].(*entities.GameItem)
	itemID := item.ID()

	p := settle(t, g, item.Rect.X)
	p.Rect.Y = item.Rect.Y

	g.checkCollisions()

	if got := g.session.Score(); got != 1 {
		t.Fatalf("pickup should score 1, got %d", got)
	}
	if _, ok := g.world.Get(itemID); ok {
		t.Error("picked-up item should be removed from the world")
	}

	// The pickup broadcast reaches listeners on the next tick.
	g.Step(core.NewInputFrame())
	inv, _ := g.world.Get(g.inventoryID)
	if got := inv.(*entities.InventoryDisplay).Total(); got != 1 {
		t.Errorf("inventory display should count the pickup, got %d", got)
	}
	if got := len(p.Inventory()); got != 1 {
		t.Errorf("player inventory should hold the pickup, got %d", got)
	}
}

func TestNpcConversation(t *testing.T) {
	g := newTestGame(t, 8)
	npcEnt, _ := g.world.Get(g.npcID)
	npc := npcEnt.(*entities.FriendlyNpc)

	p := settle(t, g, npc.Rect.X)

	// Tick 1: the player announces proximity. Tick 2: the NPC hears it and
	// raises its question-mark marker.
	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if !npc.IsNearPlayer() {
		t.Fatal("NPC should know the player is adjacent")
	}
	if got := len(g.world.ByKind(engine.KindQuestionMark)); got != 1 {
		t.Fatalf("expected one highlight marker, got %d", got)
	}

	// Activation starts the dialogue one tick later and locks the player.
	activate := core.NewInputFrame()
	activate.Set(core.ActionActivate)
	g.Step(activate)
	if !p.Talking() {
		t.Fatal("player should enter talking state on activation")
	}
	g.Step(core.NewInputFrame())
	if !npc.InDialogue() {
		t.Fatal("NPC should be in dialogue")
	}
	line, ok := npc.CurrentLine()
	if !ok || line != g.cfg.Npc.Dialogue[0] {
		t.Errorf("expected first dialogue line, got %q", line)
	}

	// The marker hides while talking.
	g.Step(core.NewInputFrame())
	if got := len(g.world.ByKind(engine.KindQuestionMark)); got != 0 {
		t.Errorf("marker should be hidden during dialogue, got %d", got)
	}

	// Walk the rest of the script; the final activation ends the dialogue
	// and unlocks the player one tick later.
	for range g.cfg.Npc.Dialogue {
		g.Step(activate)
		g.Step(core.NewInputFrame())
	}
	if npc.InDialogue() {
		t.Error("dialogue should have ended")
	}
	if p.Talking() {
		t.Error("player should be released after the dialogue ends")
	}
}

func TestRobotContactLoses(t *testing.T) {
	g := newTestGame(t, 6)
	robots := g.world.ByKind(engine.KindRobot)
	if len(robots) == 0 {
		t.Fatal("no robots spawned")
	}
	robot := robots[0].(*entities.Robot)

	settle(t, g, robot.Rect.X)
	pw, _ := g.playerWorldBounds()
	robot.Rect.Y = pw.Y

	g.checkCollisions()
	if got := g.session.Phase(); got != engine.PhaseLost {
		t.Errorf("robot contact should lose the run, got phase %v", got)
	}
}

func TestReachingGateWins(t *testing.T) {
	g := newTestGame(t, 6)
	goal, _ := g.world.Get(g.goalID)

	settle(t, g, goal.Bounds().X)
	g.Step(core.NewInputFrame())

	state := g.State()
	if !state.GameOver || !state.Won {
		t.Errorf("reaching the gate should win, got %+v", state)
	}
}
