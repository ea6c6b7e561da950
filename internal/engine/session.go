package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// HighScore is one entry of the high-score table.
type HighScore struct {
	Score int
	Level int
	Name  string
}

// ScoreEntry receives a qualifying final score so a name can be collected.
type ScoreEntry interface {
	RequestEntry(score, level int)
}

// ScoreEntryFunc adapts a function to ScoreEntry.
type ScoreEntryFunc func(score, level int)

// RequestEntry calls f.
func (f ScoreEntryFunc) RequestEntry(score, level int) { f(score, level) }

// Option configures a Session.
type Option func(*Session)

// WithHighScores seeds the table used to decide whether a final score
// qualifies. Entries are expected in descending score order.
func WithHighScores(scores []HighScore) Option {
	return func(s *Session) {
		s.highScores = append([]HighScore(nil), scores...)
	}
}

// WithScoreEntry sets the collaborator notified on a qualifying game over.
func WithScoreEntry(entry ScoreEntry) Option {
	return func(s *Session) { s.entry = entry }
}

// WithLogger sets the debug logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed makes piece generation deterministic.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// Session owns one board and the progression around it. It is driven from a
// single goroutine: commands first, then Update once per frame.
type Session struct {
	cfg    Config
	board  *Board
	gen    *Generator
	fade   *Fade
	dirty  DirtyRegions
	rng    *rand.Rand
	logger *log.Logger

	active Template
	next   Template
	anchor Coord

	score              int
	level              int
	spawned            int
	interval           int
	mulligans          int
	lastBarricadeLevel int
	sinceUpdate        int

	paused      bool
	fastForward bool
	gameOver    bool
	qualified   bool

	highScores []HighScore
	entry      ScoreEntry
}

// NewSession validates cfg and starts a session: the preview is generated
// and the opening barricade, if any, is dropped.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		board:  NewBoard(cfg.Width, cfg.Height),
		fade:   NewFade(cfg.FadeStart, cfg.FadeRate, cfg.BlockSize),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.gen = NewGenerator(s.rng, DefaultShapes(), cfg.ColorsEvery, cfg.WildcardChance)

	s.recomputeLevel()
	s.next = s.gen.Next(s.level)
	if cfg.InitialBarricadeRows > 0 {
		s.spawnBarricade(cfg.InitialBarricadeRows)
	}
	return s, nil
}

// Board exposes the board for read-only queries.
func (s *Session) Board() *Board { return s.board }

func (s *Session) Score() int { return s.score }
func (s *Session) Level() int { return s.level }
func (s *Session) Interval() int { return s.interval }
func (s *Session) Mulligans() int { return s.mulligans }
func (s *Session) Paused() bool { return s.paused }
func (s *Session) GameOver() bool { return s.gameOver }
func (s *Session) Qualified() bool { return s.qualified }

// Next returns the preview template.
func (s *Session) Next() Template { return s.next.Clone() }

// Update advances the session by elapsedMs of real time. At most one
// gravity step happens per call, and none while a fade is running.
// Nothing advances while paused or after game over.
func (s *Session) Update(elapsedMs int) {
	if s.gameOver || s.paused {
		return
	}

	if !s.board.HasMovers() {
		if s.barricadeDue() {
			s.lastBarricadeLevel = s.level
			s.spawnBarricade(s.cfg.BarricadeBase + s.level/s.cfg.BarricadeRowsEvery)
		} else if !s.spawnPiece() {
			return
		}
	}

	due := s.sinceUpdate >= s.interval ||
		(s.fastForward && s.sinceUpdate >= s.cfg.FastForwardInterval)

	switch {
	case s.board.HasFading():
		s.advanceFade(elapsedMs)
	case due:
		s.tick()
		s.sinceUpdate = 0
	}
	s.sinceUpdate += elapsedMs
}

// tick is one gravity step: falling blocks first, then the controlled
// piece, then a match pass once nothing is falling.
func (s *Session) tick() {
	s.board.Advance(RegistryFalling, &s.dirty)
	pieceCollided := s.board.Advance(RegistryControlled, &s.dirty)
	s.anchor.Row++
	if pieceCollided {
		s.board.migrateAll(RegistryControlled, RegistryFalling)
	}

	if len(s.board.falling) == 0 && !s.dirty.Empty() {
		if n := s.board.CollectMatches(&s.dirty, s.cfg.MinRun); n > 0 {
			s.fade.Reset()
			s.logger.Debug("match batch", "blocks", n)
		}
	}
}

func (s *Session) advanceFade(elapsedMs int) {
	removal := s.fade.Advance(s.board, elapsedMs)
	if removal == nil {
		s.logger.Debug("fading", "state", s.fade.State(s.board), "fraction", s.fade.Fraction())
		return
	}
	s.increaseScore(len(removal.Removed) * s.cfg.PointsPerBlock)
	s.logger.Debug("fade removed", "blocks", len(removal.Removed), "detached", removal.Detached, "score", s.score)
}

// increaseScore adds points plus the remaining-mulligan bonus. The bonus
// applies to every increase, not only the one after a mulligan.
func (s *Session) increaseScore(points int) {
	s.score += points + s.mulligans*s.cfg.MulliganBonus
	if s.cfg.LevelRule == LevelByScore {
		s.recomputeLevel()
	}
}

func (s *Session) recomputeLevel() {
	basis := s.spawned
	if s.cfg.LevelRule == LevelByScore {
		basis = s.score
	}
	s.level = basis/s.cfg.LevelStep + 1
	s.interval = max(s.cfg.BaseInterval-(s.level/s.cfg.SpeedEvery)*s.cfg.SpeedStep, s.cfg.MinInterval)
}

func (s *Session) barricadeDue() bool {
	return s.cfg.BarricadeEvery > 0 && s.level-s.lastBarricadeLevel >= s.cfg.BarricadeEvery
}

// spawnBarricade drops rows of random colors from the top as falling blocks.
// Cells that are already taken are left as they are.
func (s *Session) spawnBarricade(rows int) {
	rows = min(rows, s.cfg.Height)
	for r := 0; r < rows; r++ {
		for c, color := range s.gen.BarricadeRow(s.cfg.Width) {
			s.board.add(RegistryFalling, Block{Color: color, Column: c, Row: r})
		}
	}
	s.logger.Debug("barricade", "rows", rows, "level", s.level)
}

// spawnPiece promotes the preview to the controlled piece at the spawn
// anchor. It ends the game and returns false when the area is blocked.
func (s *Session) spawnPiece() bool {
	s.active = s.next
	s.anchor = C(s.cfg.SpawnColumn, 0)
	if !s.board.SpawnAreaAvailable(s.active, s.anchor) {
		s.endGame()
		return false
	}

	s.spawned++
	if s.cfg.LevelRule == LevelByPieces {
		s.recomputeLevel()
	}
	s.next = s.gen.Next(s.level)
	s.board.replaceControlled(s.active.Blocks(s.anchor))
	s.mulligans = s.cfg.MulliganCount
	s.logger.Debug("spawn", "piece", s.spawned, "level", s.level, "interval", s.interval)
	return true
}

func (s *Session) endGame() {
	s.gameOver = true
	s.qualified = s.qualifies()
	s.logger.Debug("game over", "score", s.score, "level", s.level, "qualified", s.qualified)
	if s.qualified && s.entry != nil {
		s.entry.RequestEntry(s.score, s.level)
	}
}

// qualifies reports whether the score earns a table slot: the table has
// room or the score is at least the lowest kept entry.
func (s *Session) qualifies() bool {
	if s.score <= 0 {
		return false
	}
	if len(s.highScores) == 0 || len(s.highScores) < s.cfg.HighScoreSlots {
		return true
	}
	lowest := s.highScores[0].Score
	for _, hs := range s.highScores[1:] {
		lowest = min(lowest, hs.Score)
	}
	return s.score >= lowest
}

// Move shifts the controlled piece dx columns. The move is all or nothing.
func (s *Session) Move(dx int) bool {
	if s.gameOver || s.paused {
		return false
	}
	if !s.board.shiftControlled(dx) {
		return false
	}
	s.anchor.Col += dx
	return true
}

// Rotate turns the controlled piece in place. It is rejected when the
// rotated outline does not fit at the current anchor.
func (s *Session) Rotate() bool {
	if s.gameOver || s.paused || len(s.board.controlled) == 0 {
		return false
	}
	rotated := s.active.Rotate()
	if !s.board.SpawnAreaAvailable(rotated, s.anchor) {
		return false
	}
	s.active = rotated
	s.board.replaceControlled(rotated.Blocks(s.anchor))
	return true
}

// UseMulligan spends a token to regenerate the preview. The controlled
// piece is not affected.
func (s *Session) UseMulligan() bool {
	if s.gameOver || s.paused || s.mulligans <= 0 {
		return false
	}
	s.mulligans--
	s.next = s.gen.Next(s.level)
	return true
}

// TogglePause suspends or resumes the session.
func (s *Session) TogglePause() {
	if s.gameOver {
		return
	}
	s.paused = !s.paused
}

// SetFastForward shortens the tick interval while on.
func (s *Session) SetFastForward(on bool) {
	s.fastForward = on
}
