package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/steamvn/tui-quest/internal/core"
	"github.com/steamvn/tui-quest/internal/registry"
	"github.com/steamvn/tui-quest/internal/storage"
)

// SSHServerConfig configures the remote-play server.
type SSHServerConfig struct {
	Address     string        // host:port to listen on, e.g. ":23234"
	HostKeyPath string        // empty means ~/.quest/host_key (auto-generated)
	DBPath      string        // shared runs database
	IdleTimeout time.Duration // idle sessions are dropped after this
}

// SSHServer serves the menu and games to SSH clients. Every session gets
// its own simulation; only the runs database is shared.
type SSHServer struct {
	cfg    SSHServerConfig
	wish   *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer builds the server. A missing runs database is logged and
// tolerated: games still run, scores just aren't recorded.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quest-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}

	s := &SSHServer{cfg: cfg, store: store, logger: logger}

	keyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s.wish, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSessions,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".quest", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 30,
		Seed:     time.Now().UnixNano(),
	}
	return newSessionFlow(s.store, cfg), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String())
	}
}

// ListenAndServe blocks until the listener fails or an interrupt arrives,
// then shuts down gracefully.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.wish.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.closeStore()
			return err
		}
	case sig := <-sigs:
		s.logger.Info("shutting down", "signal", sig)
	}
	return s.Shutdown()
}

// Shutdown stops accepting sessions and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	return s.wish.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// sessionFlow is the top-level model for one SSH session; it bounces the
// user between the menu and a running game.
type sessionFlow struct {
	store *storage.Store
	cfg   core.RuntimeConfig
	menu  MenuModel
	board *scoreboard
	game  *remoteGame
}

func newSessionFlow(store *storage.Store, cfg core.RuntimeConfig) sessionFlow {
	return sessionFlow{
		store: store,
		cfg:   cfg,
		menu:  NewMenuModel(store, cfg),
	}
}

func (f sessionFlow) Init() tea.Cmd {
	return f.menu.Init()
}

func (f sessionFlow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		f.cfg.ScreenW = wsm.Width
		f.cfg.ScreenH = wsm.Height
	}

	if f.game != nil {
		next, cmd := f.game.Update(msg)
		if g, ok := next.(remoteGame); ok {
			f.game = &g
		}

		switch {
		case f.game.quitting:
			return f, tea.Quit
		case f.game.backToMenu:
			f.game = nil
			f.menu = NewMenuModel(f.store, f.cfg)
			return f, f.menu.Init()
		}
		return f, cmd
	}

	if f.board != nil {
		next, cmd := f.board.Update(msg)
		if b, ok := next.(scoreboard); ok {
			f.board = &b
		}
		if f.board.done {
			if !f.board.backToMenu {
				return f, tea.Quit
			}
			f.board = nil
			f.menu = NewMenuModel(f.store, f.cfg)
			return f, f.menu.Init()
		}
		return f, cmd
	}

	next, cmd := f.menu.Update(msg)
	if m, ok := next.(MenuModel); ok {
		f.menu = m
	}

	if f.menu.IsQuitting() {
		return f, tea.Quit
	}

	if f.menu.WantsScoreboard() {
		b := newScoreboard(f.store, f.cfg.ScreenW, f.cfg.ScreenH)
		f.board = &b
		return f, f.board.Init()
	}

	if picked := f.menu.Selected(); picked != nil {
		game, err := registry.Create(picked.GameID)
		if err != nil {
			// Menu only lists registered games
			return f, nil
		}
		f.cfg = f.menu.Config()
		g := newRemoteGame(game, f.store, f.cfg)
		f.game = &g
		return f, f.game.Init()
	}
	return f, cmd
}

func (f sessionFlow) View() string {
	switch {
	case f.game != nil:
		return f.game.View()
	case f.board != nil:
		return f.board.View()
	}
	return f.menu.View()
}

// remoteGame runs one game inside a session, returning control to the
// menu when the player backs out of a finished or paused run.
type remoteGame struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	cfg        core.RuntimeConfig
	input      core.InputFrame
	state      core.GameState
	keys       *KeyMapper
	quitting   bool
	backToMenu bool
	runSaved   bool
}

func newRemoteGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) remoteGame {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return remoteGame{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		cfg:    cfg,
		input:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
	}
}

func (g remoteGame) Init() tea.Cmd {
	g.game.Reset(g.cfg)
	return tickCmd(g.cfg.TickRate)
}

func (g remoteGame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if g.keys.MapKeyToFrame(msg, &g.input) {
			g.quitting = true
			return g, tea.Quit
		}
		if g.keys.MapKeyToMenuAction(msg) == MenuActionBack &&
			(g.state.GameOver || g.state.Paused) {
			g.backToMenu = true
		}
		return g, nil

	case tea.WindowSizeMsg:
		g.cfg.ScreenW = msg.Width
		g.cfg.ScreenH = msg.Height
		g.screen.Resize(msg.Width, msg.Height)
		if !g.state.GameOver {
			g.game.Reset(g.cfg)
		}
		return g, nil

	case TickMsg:
		return g.tick()
	}
	return g, nil
}

func (g remoteGame) tick() (tea.Model, tea.Cmd) {
	if g.input.Has(core.ActionRestart) && g.state.GameOver {
		g.cfg.Seed = time.Now().UnixNano()
		g.game.Reset(g.cfg)
		g.state = g.game.State()
		g.runSaved = false
		g.input.Clear()
		return g, tickCmd(g.cfg.TickRate)
	}

	g.state = g.game.Step(g.input).State

	if g.state.GameOver && !g.runSaved {
		if g.store != nil {
			//nolint:errcheck // best-effort
			g.store.SaveRun(g.game.ID(), g.state.Score, g.state.Won)
		}
		g.runSaved = true
	}

	g.input.Clear()
	return g, tickCmd(g.cfg.TickRate)
}

func (g remoteGame) View() string {
	if g.quitting {
		return ""
	}
	g.game.Render(g.screen)
	return RenderScreen(g.screen)
}
