// Package blockbuster adapts the falling-block engine to the platform's
// Game interface and registers its presets.
package blockbuster

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbuster/internal/config"
	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/engine"
	"github.com/vovakirdan/blockbuster/internal/registry"
)

// dropHoldFrames is how long one drop key press keeps fast forward on.
// Terminals report key repeats but never releases, so a held key keeps
// refreshing the window.
const dropHoldFrames = 30

// Game runs one engine session per Reset.
type Game struct {
	id     string
	title  string
	cfg    engine.Config
	logger *log.Logger

	session *engine.Session
	frameMs int
	dropFor int               // frames of fast forward left
	entry   *core.ScoreRecord // qualifying final score not yet reported

	screenW  int
	screenH  int
	tooSmall bool
}

func init() {
	registry.Register(registry.Info{
		ID:          config.PresetBlockbuster,
		Title:       "Blockbuster",
		Description: "Level rises every 20 pieces; barricades every 5 levels",
	}, factory(config.PresetBlockbuster, "Blockbuster"))
	registry.Register(registry.Info{
		ID:          config.PresetClassic,
		Title:       "Blockbuster Classic",
		Description: "Level rises every 200 points; more colors sooner",
	}, factory(config.PresetClassic, "Blockbuster Classic"))
}

func factory(preset, title string) registry.Factory {
	return func(env registry.Env) (registry.Game, error) {
		cfg, err := config.Load(preset, env.ConfigPath)
		if err != nil {
			return nil, err
		}
		difficulty, err := config.ParseDifficulty(env.Difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg, difficulty)
		if config.IsFixedPreset(difficulty) {
			title += " · fixed speed"
		}
		return New(preset, title, cfg.ToEngine(), env.Logger)
	}
}

// New creates a game for an engine rule set. A nil logger discards output.
func New(id, title string, cfg engine.Config, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("blockbuster: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{id: id, title: title, cfg: cfg, logger: logger}, nil
}

// ID returns the preset identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset starts a new session.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scores := make([]engine.HighScore, len(rc.HighScores))
	for i, r := range rc.HighScores {
		scores[i] = engine.HighScore{Score: r.Score, Level: r.Level, Name: r.Name}
	}

	session, err := engine.NewSession(g.cfg,
		engine.WithSeed(seed),
		engine.WithHighScores(scores),
		engine.WithScoreEntry(engine.ScoreEntryFunc(g.requestEntry)),
		engine.WithLogger(g.logger.With("preset", g.id)),
	)
	if err != nil {
		return fmt.Errorf("blockbuster: reset: %w", err)
	}

	g.session = session
	g.frameMs = rc.FrameMillis()
	g.dropFor = 0
	g.entry = nil
	g.Resize(rc.ScreenW, rc.ScreenH)
	return nil
}

// requestEntry keeps the session's qualifying score until Step hands it
// to the platform.
func (g *Game) requestEntry(score, level int) {
	g.entry = &core.ScoreRecord{Score: score, Level: level}
	g.logger.Debug("high score entry requested", "preset", g.id, "score", score, "level", level)
}

// Resize records the terminal size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.layoutSize()
	g.tooSmall = w < minW || h < minH
}

// Step applies the frame's commands and advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}

	// A too small window holds the game like a pause.
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.session.Move(-1)
	}
	if in.Has(core.ActionRight) {
		g.session.Move(1)
	}
	if in.Has(core.ActionRotate) {
		g.session.Rotate()
	}
	if in.Has(core.ActionMulligan) {
		g.session.UseMulligan()
	}
	if in.Has(core.ActionDrop) {
		g.dropFor = dropHoldFrames
	}

	g.session.SetFastForward(g.dropFor > 0)
	if g.dropFor > 0 {
		g.dropFor--
	}

	g.session.Update(g.frameMs)
	res := core.StepResult{State: g.State(), Entry: g.entry}
	g.entry = nil
	return res
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused() || g.tooSmall,
	}
}

// Snapshot exposes the engine state for tests and tools.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Snapshot()
}
