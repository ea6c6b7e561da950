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
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/blockbuster/internal/config"
	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
	"github.com/vovakirdan/blockbuster/internal/storage"
)

// SSHServerConfig configures the multi-user SSH front end.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // empty means ~/.blockbuster/host_key, generated on first start
	DBPath      string        // shared scores database
	IdleTimeout time.Duration // idle connections are dropped after this

	// ConfigPath and Difficulty apply to every game a visitor starts.
	ConfigPath string
	Difficulty string

	TickRate int
	LogLevel log.Level
}

// DefaultSSHServerConfig returns the settings used by `blockbuster serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blockbuster/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer serves one menu, game and scoreboard per connection. All
// visitors share the score store.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer opens the score store and prepares the listener. A missing
// store only disables high scores.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	s := &SSHServer{
		cfg: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockbuster-ssh",
			Level:           cfg.LogLevel,
		}),
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		s.logger.Warn("high scores disabled", "db", cfg.DBPath, "error", err)
	} else {
		s.store = store
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		s.closeStore()
		return nil, err
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			s.logSessions,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	s.srv = srv
	return s, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		dir := config.DataDir()
		if dir == "" {
			return "", errors.New("cannot get home directory for the host key")
		}
		path = filepath.Join(dir, "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the Bubble Tea program of one connection. The SSH user
// name is offered when a high score is entered.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	logger := s.logger.With("user", sess.User())

	svc := Services{
		Store:    s.store,
		Bindings: config.DefaultBindings(),
		Logger:   logger,
		Player:   sess.User(),
	}
	env := registry.Env{
		ConfigPath: s.cfg.ConfigPath,
		Difficulty: s.cfg.Difficulty,
		Logger:     logger,
	}
	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
	}
	return NewSessionModel(svc, env, rc), []tea.ProgramOption{tea.WithAltScreen()}
}

// logSessions records connects and disconnects with the session length.
func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("connect", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("disconnect", "user", sess.User(), "remote", remote, "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.cfg.Address)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown waits up to ten seconds for open sessions, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	s.closeStore()
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}
