// Package crazyrobot implements the first course checkpoint: a top-down
// dodge-and-collect game. The player gathers diamonds for score while six
// crazy robots bounce around the arena; touching a robot loses the run,
// reaching the goal NPC wins it.
package crazyrobot

import (
	"fmt"
	"math/rand"

	"github.com/steamvn/tui-quest/internal/config"
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
	"github.com/steamvn/tui-quest/internal/entities"
	"github.com/steamvn/tui-quest/internal/registry"
)

const hudHeight = 2

// Minimum playfield below the HUD for the game to be playable.
const (
	minScreenW = 40
	minScreenH = 12
)

// Game implements the Crazy Robot checkpoint.
type Game struct {
	cfg        config.CrazyRobotConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64

	bus     *engine.Bus
	world   *engine.World
	session *engine.Session

	playerID engine.ID
	goalID   engine.ID

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level knobs set by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a new Crazy Robot game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("crazyrobot", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "crazyrobot"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Crazy Robot"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	loaded, err := config.LoadCrazyRobot(configPath)
	if err != nil {
		loaded = config.DefaultCrazyRobotConfig()
	}
	g.cfg = loaded

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if difficultyPreset != "" {
		preset := config.DifficultyPreset(difficultyPreset)
		g.difficulty.SetInitialLevel(config.InitialLevelForPreset(preset))
		if config.IsFixedPreset(preset) {
			g.difficulty.SetEnabled(false)
		}
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	if g.tooSmall {
		return
	}

	g.bus = engine.NewBus()
	g.world = engine.NewWorld(g.bus)
	g.session = engine.NewSession()

	g.populate()
}

// populate spawns the initial entity roster.
func (g *Game) populate() {
	arena := g.arena()

	g.playerID = g.world.MustSpawn(engine.KindPlayer, engine.SpawnOpts{
		X: arena.X + arena.W/2, Y: arena.Y + arena.H/2,
		W: g.cfg.Player.Width, H: g.cfg.Player.Height,
		Speed: g.cfg.Player.Speed,
		Arena: arena,
	})

	for i := 0; i < g.cfg.Robots; i++ {
		g.world.MustSpawn(engine.KindRobot, engine.SpawnOpts{
			X:  arena.X + g.rng.Intn(arena.W-g.cfg.Robot.Width),
			Y:  arena.Y + g.rng.Intn(arena.H-g.cfg.Robot.Height),
			DX: g.randVelocity(), DY: g.randVelocity(),
			W: g.cfg.Robot.Width, H: g.cfg.Robot.Height,
			Arena: arena,
		})
	}

	for i := 0; i < g.cfg.Items; i++ {
		variant := entities.ItemDiamondBlue
		if i%2 == 1 {
			variant = entities.ItemDiamondRed
		}
		g.world.MustSpawn(engine.KindItem, engine.SpawnOpts{
			X: arena.X + g.rng.Intn(arena.W-g.cfg.Item.Width),
			Y: arena.Y + g.rng.Intn(arena.H-g.cfg.Item.Height),
			W: g.cfg.Item.Width, H: g.cfg.Item.Height,
			Variant: variant,
		})
	}

	// Goal NPC in the top-right corner, away from the player spawn
	g.goalID = g.world.MustSpawn(engine.KindFriendlyNpc, engine.SpawnOpts{
		X: arena.Right() - g.cfg.Goal.Width - 1, Y: arena.Y + 1,
		W: g.cfg.Goal.Width, H: g.cfg.Goal.Height,
	})
}

// randVelocity returns a nonzero velocity component in [-speed, speed].
func (g *Game) randVelocity() int {
	speed := max(1, g.cfg.Robot.Speed)
	for {
		v := g.rng.Intn(2*speed+1) - speed
		if v != 0 {
			return v
		}
	}
}

func (g *Game) arena() core.Rect {
	return core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.session != nil && !g.session.Running() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.tooSmall || g.paused || g.session == nil || !g.session.Running() {
		return core.StepResult{State: g.State()}
	}

	// Input becomes player-directed command events, joined by whatever the
	// entities posted last tick.
	g.postCommands(input)
	events := g.bus.Drain()

	g.applyDifficulty()
	g.world.Tick(events)
	g.checkCollisions()

	return core.StepResult{State: g.State()}
}

func (g *Game) postCommands(input core.InputFrame) {
	commands := []struct {
		action core.Action
		event  engine.EventType
	}{
		{core.ActionLeft, engine.EventMoveLeft},
		{core.ActionRight, engine.EventMoveRight},
		{core.ActionUp, engine.EventMoveUp},
		{core.ActionDown, engine.EventMoveDown},
	}
	for _, c := range commands {
		if input.Has(c.action) {
			g.bus.Post(engine.Event{Type: c.event, Listener: g.playerID})
		}
	}
}

func (g *Game) applyDifficulty() {
	scale := g.difficulty.Speed(1.0, g.session.Score(), int(g.tick))
	for _, e := range g.world.ByKind(engine.KindRobot) {
		e.(*entities.Robot).SetSpeedScale(scale)
	}
}

// checkCollisions runs the overlap checks in fixed priority order: item
// pickups first, then hazards, then the goal. The first terminal transition
// ends the checks for this tick.
func (g *Game) checkCollisions() {
	player, ok := g.world.Get(g.playerID)
	if !ok {
		return
	}
	pb := player.Bounds()

	for _, e := range g.world.ByKind(engine.KindItem) {
		item := e.(*entities.GameItem)
		if item.Hidden() {
			continue
		}
		if pb.Intersects(item.Bounds()) {
			item.Collect()
			g.session.AddScore(1)
			g.bus.Post(engine.Event{Type: engine.EventItemCollected, Payload: item.Variant()})
		}
	}

	for _, e := range g.world.ByKind(engine.KindRobot) {
		if pb.Intersects(e.Bounds()) {
			g.session.Lose()
			return
		}
	}

	if goal, ok := g.world.Get(g.goalID); ok && pb.Intersects(goal.Bounds()) {
		g.session.Win()
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawOverlayBox("Window too small", "Resize to continue")
		return
	}

	for _, e := range g.world.ByKind(engine.KindItem) {
		item := e.(*entities.GameItem)
		if item.Hidden() {
			continue
		}
		color := core.ColorBrightBlue
		if item.Variant() == entities.ItemDiamondRed {
			color = core.ColorBrightRed
		}
		dst.DrawRect(item.Bounds(), '*', color)
	}

	for _, e := range g.world.ByKind(engine.KindRobot) {
		dst.DrawRect(e.Bounds(), 'R', core.ColorRed)
	}

	if goal, ok := g.world.Get(g.goalID); ok {
		dst.DrawRect(goal.Bounds(), 'N', core.ColorBrightGreen)
	}

	if player, ok := g.world.Get(g.playerID); ok {
		dst.DrawRect(player.Bounds(), '@', core.ColorBrightYellow)
	}

	switch {
	case g.session != nil && g.session.Phase() == engine.PhaseWon:
		dst.DrawOverlayBox("You Won!", fmt.Sprintf("Final Score: %d", g.session.Score()))
	case g.session != nil && g.session.Phase() == engine.PhaseLost:
		dst.DrawOverlayBox("You Lost!", "Press R to restart")
	case g.paused:
		dst.DrawOverlayBox("Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	score := 0
	if g.session != nil {
		score = g.session.Score()
	}
	hud := fmt.Sprintf(" Crazy Robot — Score: %d  Diamonds left: %d", score, g.itemsLeft())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) itemsLeft() int {
	if g.world == nil {
		return 0
	}
	left := 0
	for _, e := range g.world.ByKind(engine.KindItem) {
		if !e.(*entities.GameItem).Hidden() {
			left++
		}
	}
	return left
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: !g.session.Running(),
		Won:      g.session.Phase() == engine.PhaseWon,
		Paused:   g.paused,
	}
}
