// Package sidequest implements the scrolling side-view checkpoint. The
// player walks and jumps through a world wider than the screen, collects
// diamonds, talks to a friendly NPC, dodges patrolling robots and wins by
// reaching the gate at the far east end.
//
// The player entity lives in camera coordinates; everything else lives in
// world coordinates. When the player walks into a soft edge of the screen
// the camera scrolls instead and the player walks in place.
package sidequest

import (
	"fmt"
	"math/rand"

	"github.com/steamvn/tui-quest/internal/config"
	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/engine"
	"github.com/steamvn/tui-quest/internal/entities"
	"github.com/steamvn/tui-quest/internal/registry"
)

const (
	hudHeight   = 2
	groundH     = 1
	robotPatrol = 24 // patrol segment width per robot

	minScreenW = 40
	minScreenH = 14
)

// Game implements the Side Quest checkpoint.
type Game struct {
	cfg        config.SideQuestConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64

	bus     *engine.Bus
	world   *engine.World
	session *engine.Session

	playerID    engine.ID
	npcID       engine.ID
	goalID      engine.ID
	inventoryID engine.ID

	worldW   int
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

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

// New creates a new Side Quest game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("sidequest", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sidequest"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Side Quest"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	loaded, err := config.LoadSideQuest(configPath)
	if err != nil {
		loaded = config.DefaultSideQuestConfig()
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
	g.worldW = max(g.cfg.WorldWidth, g.screenW)

	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	if g.tooSmall {
		return
	}

	g.bus = engine.NewBus()
	g.world = engine.NewWorld(g.bus)
	g.session = engine.NewSession()

	g.populate()
}

// groundY is the world row the ground tiles occupy.
func (g *Game) groundY() int {
	return g.screenH - groundH
}

func (g *Game) populate() {
	floor := g.groundY()

	// The player is clamped to the screen; the camera covers the rest.
	playerArena := core.NewRect(0, hudHeight, g.screenW, floor-hudHeight)
	g.playerID = g.world.MustSpawn(engine.KindPlayer, engine.SpawnOpts{
		X: 4, Y: floor - g.cfg.Player.Height,
		W: g.cfg.Player.Width, H: g.cfg.Player.Height,
		Speed:        g.cfg.Player.Speed,
		Gravity:      g.cfg.Player.Gravity,
		JumpImpulse:  g.cfg.Player.JumpImpulse,
		MaxFallSpeed: g.cfg.Player.MaxFallSpeed,
		Arena:        playerArena,
	})

	// Diamonds are strewn along the route, some hovering a jump away.
	items := (g.worldW - g.screenW) / 30
	for i := 0; i < items; i++ {
		x := g.screenW/2 + i*30 + g.rng.Intn(10)
		y := floor - g.cfg.Item.Height
		if i%3 == 2 {
			y -= 3 + g.rng.Intn(2) // jump to reach
		}
		variant := entities.ItemDiamondBlue
		if i%2 == 1 {
			variant = entities.ItemDiamondRed
		}
		g.world.MustSpawn(engine.KindItem, engine.SpawnOpts{
			X: x, Y: y,
			W: g.cfg.Item.Width, H: g.cfg.Item.Height,
			Variant: variant,
		})
	}

	// Ground robots patrol fixed segments of the route.
	robots := (g.worldW - g.screenW) / 60
	for i := 0; i < robots; i++ {
		segX := g.screenW + i*60 + g.rng.Intn(20)
		g.world.MustSpawn(engine.KindRobot, engine.SpawnOpts{
			X: segX, Y: floor - g.cfg.Robot.Height,
			DX: g.cfg.Robot.Speed,
			W:  g.cfg.Robot.Width, H: g.cfg.Robot.Height,
			Arena: core.NewRect(segX, hudHeight, robotPatrol, floor-hudHeight),
		})
	}

	g.npcID = g.world.MustSpawn(engine.KindFriendlyNpc, engine.SpawnOpts{
		X: g.worldW / 2, Y: floor - g.cfg.Npc.Height,
		W: g.cfg.Npc.Width, H: g.cfg.Npc.Height,
		Lines: g.cfg.Npc.Dialogue,
	})

	g.goalID = g.world.MustSpawn(engine.KindFriendlyNpc, engine.SpawnOpts{
		X: g.worldW - g.cfg.Goal.Width - 2, Y: floor - g.cfg.Goal.Height,
		W: g.cfg.Goal.Width, H: g.cfg.Goal.Height,
	})

	g.inventoryID = g.world.MustSpawn(engine.KindInventoryDisplay, engine.SpawnOpts{})
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

	g.postCommands(input)
	events := g.bus.Drain()

	g.applyDifficulty()
	g.world.Tick(events)
	g.updateScroll()
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
		{core.ActionJump, engine.EventJump},
		{core.ActionActivate, engine.EventActivate},
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

// updateScroll converts player movement into camera movement at the screen's
// soft edges. The camera absorbs as much of the move as the world allows;
// the remainder stays with the player.
func (g *Game) updateScroll() {
	p := g.player()
	if p == nil {
		return
	}
	dx := p.LastDX()
	if dx == 0 {
		return
	}

	maxScroll := g.worldW - g.screenW
	soft := g.cfg.Player.SoftEdgeWidth

	switch {
	case dx > 0 && p.Rect.Right() > g.screenW-soft && g.world.ScrollX() < maxScroll:
		p.UndoMoveX()
		absorbed := min(dx, maxScroll-g.world.ScrollX())
		g.world.UpdateScroll(absorbed)
		p.Rect.X += dx - absorbed
	case dx < 0 && p.Rect.X < soft && !g.world.AtLeftMost():
		p.UndoMoveX()
		absorbed := max(dx, -g.world.ScrollX())
		g.world.UpdateScroll(absorbed)
		p.Rect.X += dx - absorbed
	}
}

// playerWorldBounds returns the player's bounds in world coordinates.
func (g *Game) playerWorldBounds() (core.Rect, bool) {
	p := g.player()
	if p == nil {
		return core.Rect{}, false
	}
	return p.Bounds().Translate(g.world.ScrollX(), 0), true
}

func (g *Game) player() *entities.Player {
	e, ok := g.world.Get(g.playerID)
	if !ok {
		return nil
	}
	return e.(*entities.Player)
}

// checkCollisions runs the fixed-priority overlap pass: pickups, then
// hazards, then the gate.
func (g *Game) checkCollisions() {
	pb, ok := g.playerWorldBounds()
	if !ok {
		return
	}

	for _, e := range g.world.ByKind(engine.KindItem) {
		item := e.(*entities.GameItem)
		if pb.Intersects(item.Bounds()) {
			g.session.AddScore(1)
			g.bus.Post(engine.Event{Type: engine.EventItemCollected, Payload: item.Variant()})
			g.world.Remove(item.ID())
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

	scroll := g.world.ScrollX()

	// Ground spans the whole world; render the visible strip.
	for y := g.groundY(); y < g.screenH; y++ {
		dst.DrawHLine(0, y, g.screenW, '=')
	}

	for _, e := range g.world.ByKind(engine.KindItem) {
		item := e.(*entities.GameItem)
		color := core.ColorBrightBlue
		if item.Variant() == entities.ItemDiamondRed {
			color = core.ColorBrightRed
		}
		dst.DrawRect(item.Bounds().Translate(-scroll, 0), '*', color)
	}

	for _, e := range g.world.ByKind(engine.KindRobot) {
		dst.DrawRect(e.Bounds().Translate(-scroll, 0), 'R', core.ColorRed)
	}

	if npc, ok := g.world.Get(g.npcID); ok {
		dst.DrawRect(npc.Bounds().Translate(-scroll, 0), 'N', core.ColorBrightCyan)
	}
	for _, e := range g.world.ByKind(engine.KindQuestionMark) {
		b := e.Bounds().Translate(-scroll, 0)
		dst.SetCell(b.X, b.Y, '?', core.ColorBrightYellow)
	}

	if goal, ok := g.world.Get(g.goalID); ok {
		dst.DrawRect(goal.Bounds().Translate(-scroll, 0), '#', core.ColorBrightGreen)
	}

	if p := g.player(); p != nil {
		dst.DrawRect(p.Bounds(), '@', core.ColorBrightYellow)
	}

	g.renderDialogue(dst)

	switch {
	case g.session != nil && g.session.Phase() == engine.PhaseWon:
		dst.DrawOverlayBox("You Won!", fmt.Sprintf("Final Score: %d", g.session.Score()))
	case g.session != nil && g.session.Phase() == engine.PhaseLost:
		dst.DrawOverlayBox("You Lost!", "Press R to restart")
	case g.paused:
		dst.DrawOverlayBox("Paused", "Press P to continue")
	}
}

// renderDialogue draws the NPC's current line in a bar above the ground.
func (g *Game) renderDialogue(dst *core.Screen) {
	npc, ok := g.world.Get(g.npcID)
	if !ok {
		return
	}
	friendly := npc.(*entities.FriendlyNpc)
	line, ok := friendly.CurrentLine()
	if !ok {
		return
	}
	y := g.groundY() + groundH - 1
	dst.DrawHLine(0, y, g.screenW, ' ')
	dst.DrawTextColor(1, y, fmt.Sprintf("NPC: %s  [E to continue]", line), core.ColorBrightWhite)
}

func (g *Game) renderHUD(dst *core.Screen) {
	score := 0
	if g.session != nil {
		score = g.session.Score()
	}
	gems := 0
	if g.world != nil {
		if e, ok := g.world.Get(g.inventoryID); ok {
			gems = e.(*entities.InventoryDisplay).Total()
		}
	}
	hud := fmt.Sprintf(" Side Quest — Score: %d  Gems: %d", score, gems)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
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
