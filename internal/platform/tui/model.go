package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/registry"
	"github.com/steamvn/tui-quest/internal/storage"
)

// Model drives one game in the local terminal: it translates key events
// into the per-tick input frame, steps the simulation on each tick
// message, and persists the run when it finishes.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	keys   *KeyMapper
	cfg    core.RuntimeConfig

	input    core.InputFrame
	state    core.GameState
	quitting bool
	runSaved bool
}

// NewModel wraps a game for local play. A zero seed is replaced with the
// current time so unseeded runs differ.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		keys:   NewKeyMapper(),
		cfg:    cfg,
		input:  core.NewInputFrame(),
	}
}

func (m Model) Init() tea.Cmd {
	m.game.Reset(m.cfg)
	return tickCmd(m.cfg.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		if m.keys.MapKeyToFrame(msg, &m.input) {
			m.quitting = true
			return m, tea.Quit
		}
		// Restart only makes sense on a finished run
		if m.input.Has(core.ActionRestart) && !m.state.GameOver {
			m.input.Clear()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		// Games size their arenas at Reset, so a live run restarts on
		// resize; a finished one keeps its final frame.
		if !m.state.GameOver {
			m.game.Reset(m.cfg)
		}
		return m, nil

	case TickMsg:
		return m.stepOnce()
	}
	return m, nil
}

func (m Model) stepOnce() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.cfg.Seed = time.Now().UnixNano()
		m.game.Reset(m.cfg)
		m.state = m.game.State()
		m.runSaved = false
		m.input.Clear()
		return m, tickCmd(m.cfg.TickRate)
	}

	m.state = m.game.Step(m.input).State
	m.input.Clear()

	if m.state.GameOver && !m.runSaved {
		if m.store != nil {
			//nolint:errcheck // best-effort
			m.store.SaveRun(m.game.ID(), m.state.Score, m.state.Won)
		}
		m.runSaved = true
	}
	return m, tickCmd(m.cfg.TickRate)
}

// saveScreenshot dumps the current frame as plain text under
// ~/.quest/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".quest", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best-effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run plays the game in the current terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	return err
}
