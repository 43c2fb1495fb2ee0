package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/registry"
	"github.com/steamvn/tui-quest/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one selectable game, with its stored best score.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
}

// MenuModel is the game picker. It quits its program on selection; the
// caller inspects Selected/WantsScoreboard/IsQuitting to see why.
type MenuModel struct {
	items  []MenuItem
	cursor int
	store  *storage.Store
	config core.RuntimeConfig
	keys   *KeyMapper

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel builds the menu from the game registry, pulling each
// game's best score from the store when one is available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			item.HighScore, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit

		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}

		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case MenuActionSelect:
			if len(m.items) > 0 {
				picked := m.items[m.cursor]
				m.selected = &picked
				return m, tea.Quit
			}

		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		centerText(menuTitleStyle.Render("  Q U E S T  "), w),
		"",
		centerText("Select a game", w),
		"",
	}

	for i, item := range m.items {
		best := ""
		if item.HighScore > 0 {
			best = fmt.Sprintf("  (best: %d)", item.HighScore)
		}
		row := fmt.Sprintf("  %s%s", item.Title, best)
		if i == m.cursor {
			row = menuCursorStyle.Render(fmt.Sprintf("> %s%s", item.Title, best))
		}
		lines = append(lines, centerText(row, w))
	}

	hint := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	lines = append(lines, "", centerText(menuHintStyle.Render(hint), w), "")

	return strings.Join(lines, "\n")
}

// Selected reports the picked game, nil when the menu exited another way.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, tracking any resizes seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult is what the menu program ended with.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the picker as its own program and reports the outcome.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		res.Quit = true
	default:
		res.GameID = m.Selected().GameID
	}
	return res, nil
}
