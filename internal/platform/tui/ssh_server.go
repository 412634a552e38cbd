package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/little-wizard/internal/config"
	"github.com/vovakirdan/little-wizard/internal/game"
	"github.com/vovakirdan/little-wizard/internal/registry"
	"github.com/vovakirdan/little-wizard/internal/storage"
)

// idleTimeout closes connections with no input.
const idleTimeout = 30 * time.Minute

// SSHServer wraps a Wish SSH server that hosts one wizard per session.
type SSHServer struct {
	cfg    config.WizardConfig
	addr   string
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer creates a new SSH server. store may be nil.
func NewSSHServer(cfg config.WizardConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	srv := &SSHServer{
		cfg:    cfg,
		addr:   net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		store:  store,
		logger: logger.WithPrefix("ssh"),
	}

	hostKeyPath, err := config.ExpandHome(cfg.Server.HostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve host key path: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(srv.addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(idleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.closeMiddleware,
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	slot := &sessionSlot{}
	sshSession.Context().SetValue(slotKey{}, slot)
	model := NewSessionModel(s.store, s.cfg, pty.Window.Width, pty.Window.Height,
		s.logger.With("user", sshSession.User()))
	model.slot = slot
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

type slotKey struct{}

// closeMiddleware ends the connection's open play session once the program
// has exited, including when the client dropped mid-game.
func (s *SSHServer) closeMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if slot, ok := sshSession.Context().Value(slotKey{}).(*sessionSlot); ok {
			slot.close()
		}
	}
}

// limitMiddleware refuses sessions beyond MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		limit := int32(s.cfg.Server.MaxSessions)
		if n := s.active.Add(1); limit > 0 && n > limit {
			s.active.Add(-1)
			s.logger.Warn("session limit reached", "user", sshSession.User(), "limit", limit)
			wish.Fatalln(sshSession, "The forest is full, try again later.")
			return
		}
		defer s.active.Add(-1)
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.addr
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// SessionModel manages the flow of one connection: menu, game, records.
type SessionModel struct {
	store  *storage.Store
	cfg    config.WizardConfig
	logger *log.Logger
	width  int
	height int

	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	slot       *sessionSlot
	quitting   bool
	err        string
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.WizardConfig, width, height int, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		cfg:    cfg,
		logger: logger,
		width:  width,
		height: height,
		menu:   NewMenuModel(store, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	// The menu ends its own program with tea.Quit; inside a session we
	// intercept the result instead.
	switch {
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.width, m.height)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		def, err := registry.Create(m.menu.Selected().MapID)
		if err == nil {
			var g *game.Game
			g, err = game.New(def, m.cfg, m.cfg.Map.Seed, game.WithLogger(m.logger))
			if err == nil {
				gm := NewModel(g, m.store, m.cfg, m.width, m.height, m.logger)
				gm.embedded = true
				if m.slot != nil {
					gm.slot = m.slot
					m.slot.set(gm.session)
				}
				m.gameModel = &gm
				return m, gm.Init()
			}
		}
		m.logger.Error("cannot start map", "err", err)
		m.err = err.Error()
		m.menu = NewMenuModel(m.store, m.width, m.height)
		return m, nil
	}

	return m, filterQuit(cmd)
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = NewMenuModel(m.store, m.width, m.height)
		return m, nil
	}
	return m, filterQuit(cmd)
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = NewMenuModel(m.store, m.width, m.height)
		return m, m.menu.Init()
	}
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// filterQuit drops commands from child models; sub-screens signal exit
// through their state and the session decides whether to quit.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	if m.err != "" {
		return m.menu.View() + "\n" + centerText(m.err, m.width)
	}
	return m.menu.View()
}
