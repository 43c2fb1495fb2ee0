package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steamvn/tui-quest/internal/registry"
	"github.com/steamvn/tui-quest/internal/storage"
)

const (
	// Below this terminal width the game list collapses into tabs.
	sidebarBreakpoint = 80
	gameListWidth     = 20
	runHistoryLimit   = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardPickStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

type scoreKeys struct {
	Scroll   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextGame, k.PrevGame, k.Back}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("up/down", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreboard shows recorded runs per game, one game at a time.
type scoreboard struct {
	store    *storage.Store
	games    []registry.GameInfo
	selected int

	runs  []storage.RunEntry
	table table.Model
	keys  scoreKeys
	help  help.Model

	width, height int
	done          bool
	backToMenu    bool
}

func newScoreboard(store *storage.Store, width, height int) scoreboard {
	sb := scoreboard{
		store:  store,
		games:  registry.List(),
		keys:   newScoreKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	sb.rebuildTable()
	sb.selectGame(0)
	return sb
}

func (sb *scoreboard) sidebarVisible() bool {
	return sb.width >= sidebarBreakpoint
}

func (sb *scoreboard) rebuildTable() {
	dateWidth := 14
	room := sb.width - 4
	if sb.sidebarVisible() {
		room -= gameListWidth + 3
	}
	if room > 50 {
		dateWidth = min(room-26, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Outcome", Width: 8},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(sb.height-8),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	sb.table = t
}

// selectGame moves the cursor by a relative step and reloads that game's runs.
func (sb *scoreboard) selectGame(step int) {
	if len(sb.games) == 0 {
		return
	}
	sb.selected = (sb.selected + step + len(sb.games)) % len(sb.games)

	sb.runs = nil
	if sb.store != nil {
		if runs, err := sb.store.TopRuns(sb.games[sb.selected].ID, runHistoryLimit); err == nil {
			sb.runs = runs
		}
	}

	rows := make([]table.Row, len(sb.runs))
	for i, r := range sb.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	sb.table.SetRows(rows)
	sb.table.GotoTop()
}

func (sb scoreboard) Init() tea.Cmd {
	return nil
}

func (sb scoreboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, sb.keys.Quit):
			sb.done = true
			return sb, tea.Quit
		case key.Matches(msg, sb.keys.Back):
			sb.done = true
			sb.backToMenu = true
			return sb, tea.Quit
		case key.Matches(msg, sb.keys.NextGame):
			sb.selectGame(1)
			return sb, nil
		case key.Matches(msg, sb.keys.PrevGame):
			sb.selectGame(-1)
			return sb, nil
		}

	case tea.WindowSizeMsg:
		sb.width, sb.height = msg.Width, msg.Height
		sb.help.Width = msg.Width
		sb.rebuildTable()
		sb.selectGame(0)
		return sb, nil
	}

	var cmd tea.Cmd
	sb.table, cmd = sb.table.Update(msg)
	return sb, cmd
}

func (sb scoreboard) View() string {
	if sb.done {
		return ""
	}

	title := "HIGH SCORES"
	if len(sb.games) > 0 {
		title += " - " + sb.games[sb.selected].Title
	}

	var out strings.Builder
	out.WriteString(boardTitleStyle.Render(centerText(title, sb.width)))
	out.WriteString("\n\n")
	if sb.sidebarVisible() {
		out.WriteString(sb.viewWithSidebar())
	} else {
		out.WriteString(sb.viewWithTabs())
	}
	out.WriteString("\n")
	out.WriteString(boardDimStyle.Render(sb.help.View(sb.keys)))
	return out.String()
}

func (sb scoreboard) viewWithSidebar() string {
	var list strings.Builder
	list.WriteString("Games\n")
	list.WriteString(strings.Repeat("-", gameListWidth-4))
	list.WriteString("\n")

	for i, g := range sb.games {
		line := "  " + truncateTitle(g.Title, gameListWidth-6)
		if i == sb.selected {
			line = boardPickStyle.Render("> " + truncateTitle(g.Title, gameListWidth-6))
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	sidebar := boardBoxStyle.Width(gameListWidth).Render(list.String())
	runs := boardBoxStyle.Render(sb.viewRuns())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", runs)
}

func (sb scoreboard) viewWithTabs() string {
	tabs := make([]string, len(sb.games))
	for i, g := range sb.games {
		name := truncateTitle(g.Title, 10)
		if i == sb.selected {
			tabs[i] = boardTabStyle.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > sb.width-4 {
		tabLine = fmt.Sprintf("< %s >", sb.games[sb.selected].Title)
	}

	var out strings.Builder
	out.WriteString(centerText(tabLine, sb.width))
	out.WriteString("\n\n")
	out.WriteString(centerText(boardBoxStyle.Render(sb.viewRuns()), sb.width))
	return out.String()
}

func (sb scoreboard) viewRuns() string {
	if len(sb.runs) == 0 {
		return boardEmptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return sb.table.View()
}

func truncateTitle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "."
}

// RunScoreboard shows the scoreboard until the user leaves it.
// Returns true when they backed out to the menu, false on quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(newScoreboard(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if sb, ok := final.(scoreboard); ok {
		return sb.backToMenu, nil
	}
	return false, nil
}
