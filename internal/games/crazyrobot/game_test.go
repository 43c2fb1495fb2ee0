package crazyrobot

import (
	"strings"
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

// newTestGame returns a freshly reset game.
func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(seed))
	if g.tooSmall {
		t.Fatal("test screen should not be too small")
	}
	return g
}

// removeRobots clears all hazards so collision tests can place the player
// anywhere without triggering a loss.
func removeRobots(g *Game) {
	for _, e := range g.world.ByKind(engine.KindRobot) {
		g.world.Remove(e.ID())
	}
}

func playerOf(t *testing.T, g *Game) *entities.Player {
	t.Helper()
	e, ok := g.world.Get(g.playerID)
	if !ok {
		t.Fatal("player missing from world")
	}
	return e.(*entities.Player)
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and input sequence must produce identical outcomes.
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%4 == 0:
			inputs[i].Set(core.ActionRight)
		case i%7 == 0:
			inputs[i].Set(core.ActionDown)
		case i%11 == 0:
			inputs[i].Set(core.ActionLeft)
		}
	}

	run := func() (core.GameState, core.Rect) {
		g := New()
		g.Reset(testConfig(12345))
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		e, _ := g.world.Get(g.playerID)
		return state, e.Bounds()
	}

	state1, pos1 := run()
	state2, pos2 := run()

	if state1 != state2 {
		t.Errorf("states differ: run1=%+v run2=%+v", state1, state2)
	}
	if pos1 != pos2 {
		t.Errorf("player positions differ: run1=%+v run2=%+v", pos1, pos2)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 42)

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionRight)
		g.Step(in)
	}
	g.session.Lose()

	g.Reset(testConfig(42))

	state := g.State()
	if state.Score != 0 {
		t.Errorf("Reset should clear score, got %d", state.Score)
	}
	if state.GameOver {
		t.Error("Reset should clear game-over state")
	}
	if got := len(g.world.ByKind(engine.KindRobot)); got != g.cfg.Robots {
		t.Errorf("Reset should respawn %d robots, got %d", g.cfg.Robots, got)
	}
	if got := len(g.world.ByKind(engine.KindItem)); got != g.cfg.Items {
		t.Errorf("Reset should respawn %d items, got %d", g.cfg.Items, got)
	}
}

func TestItemPickupScoresOnce(t *testing.T) {
	g := newTestGame(t, 7)
	removeRobots(g)

	item := g.world.ByKind(engine.KindItem)[0].(*entities.GameItem)
	p := playerOf(t, g)
	p.Rect.X = item.Rect.X
	p.Rect.Y = item.Rect.Y

	g.checkCollisions()
	if got := g.session.Score(); got != 1 {
		t.Fatalf("pickup should score 1, got %d", got)
	}
	if !item.Hidden() {
		t.Error("collected item should be hidden")
	}

	// Standing on the collected item must not score again.
	g.checkCollisions()
	if got := g.session.Score(); got != 1 {
		t.Errorf("collected item scored again, score=%d", got)
	}
}

func TestHazardCheckedBeforeGoal(t *testing.T) {
	g := newTestGame(t, 9)

	goal, ok := g.world.Get(g.goalID)
	if !ok {
		t.Fatal("goal missing from world")
	}
	gb := goal.Bounds()

	// Overlap the player with both a robot and the goal on the same tick.
	p := playerOf(t, g)
	p.Rect.X = gb.X
	p.Rect.Y = gb.Y
	robot := g.world.ByKind(engine.KindRobot)[0].(*entities.Robot)
	robot.Rect.X = gb.X
	robot.Rect.Y = gb.Y

	g.checkCollisions()
	if got := g.session.Phase(); got != engine.PhaseLost {
		t.Errorf("hazard contact must win the tiebreak, got phase %v", got)
	}
}

func TestReachingGoalWins(t *testing.T) {
	g := newTestGame(t, 3)
	removeRobots(g)

	goal, _ := g.world.Get(g.goalID)
	p := playerOf(t, g)
	p.Rect.X = goal.Bounds().X
	p.Rect.Y = goal.Bounds().Y

	g.Step(core.NewInputFrame())

	state := g.State()
	if !state.GameOver || !state.Won {
		t.Errorf("reaching the goal should end the game as won, got %+v", state)
	}
}

func TestStepFrozenAfterGameOver(t *testing.T) {
	g := newTestGame(t, 11)
	g.session.Lose()

	p := playerOf(t, g)
	before := p.Bounds()

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)

	if got := p.Bounds(); got != before {
		t.Errorf("player moved after game over: %+v -> %+v", before, got)
	}
	if g.State().Won {
		t.Error("lost game must stay lost")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, 5)
	removeRobots(g)
	p := playerOf(t, g)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	before := p.Bounds()
	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.Step(in)
	if got := p.Bounds(); got != before {
		t.Errorf("player moved while paused: %+v -> %+v", before, got)
	}

	g.Step(pause)
	g.Step(in)
	if got := p.Bounds(); got == before {
		t.Error("player should move after unpausing")
	}
}

func TestRenderShowsHUDAndOverlay(t *testing.T) {
	g := newTestGame(t, 2)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if row := screen.Row(0); !strings.Contains(row, "Crazy Robot") {
		t.Errorf("HUD missing from row 0: %q", row)
	}

	g.session.Lose()
	g.Render(screen)
	if !strings.Contains(screen.String(), "You Lost!") {
		t.Error("loss overlay missing from render")
	}
}

