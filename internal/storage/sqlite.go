// Package storage keeps blockbuster high scores in SQLite through the
// pure-Go modernc.org/sqlite driver, so no CGO toolchain is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/vovakirdan/blockbuster/internal/core"
)

// DefaultSlots is the size of a preset's high-score table.
const DefaultSlots = 10

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id    TEXT    NOT NULL,
		score      INTEGER NOT NULL,
		level      INTEGER NOT NULL DEFAULT 1,
		name       TEXT    NOT NULL DEFAULT '',
		session_id TEXT    NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC, id)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_session ON scores(session_id)`,
}

const (
	insertScore = `INSERT INTO scores (game_id, score, level, name, session_id) VALUES (?, ?, ?, ?, ?)`

	selectTop = `SELECT id, game_id, score, level, name, session_id, created_at
		FROM scores WHERE game_id = ?
		ORDER BY score DESC, id ASC
		LIMIT ?`

	selectStats = `SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		COALESCE(AVG(score), 0), MAX(created_at)
		FROM scores WHERE game_id = ?`
)

// Store is a handle on the scores database. It is safe for concurrent use;
// SSH sessions share one.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one saved row of a high-score table.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Level     int
	Name      string
	SessionID string // play session that produced the score
	CreatedAt time.Time
}

// Record converts the entry to the form games receive.
func (e ScoreEntry) Record() core.ScoreRecord {
	return core.ScoreRecord{Score: e.Score, Level: e.Level, Name: e.Name}
}

// Records converts entries, keeping their order.
func Records(entries []ScoreEntry) []core.ScoreRecord {
	out := make([]core.ScoreRecord, len(entries))
	for i, e := range entries {
		out[i] = e.Record()
	}
	return out
}

// Open opens the database at dbPath, creating it and its directory when
// missing, and brings the schema up to date. A leading ~ is the home
// directory.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; sqlite serializes them anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return &Store{db: db}, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not take bound parameters.
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewSessionID returns an identifier for one play session.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveScore records a final score for the given preset. An empty sessionID
// gets a fresh one. Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, rec core.ScoreRecord, sessionID string) (int64, error) {
	return saveScore(s.db, gameID, rec, sessionID)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveScore(db execer, gameID string, rec core.ScoreRecord, sessionID string) (int64, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	res, err := db.Exec(insertScore, gameID, rec.Score, max(rec.Level, 1), SanitizeName(rec.Name), sessionID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit entries of a preset, best first and older
// entries first on ties. A non-positive limit means DefaultSlots.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultSlots
	}
	rows, err := s.db.Query(selectTop, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Level, &e.Name, &e.SessionID, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a preset, or 0 for an empty table.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// Qualifies reports whether score would enter a table of the given size:
// it must be positive and either the table has room or the score is at
// least the lowest kept entry.
func (s *Store) Qualifies(gameID string, score, slots int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	top, err := s.TopScores(gameID, slots)
	if err != nil {
		return false, err
	}
	if len(top) < max(slots, 1) {
		return true, nil
	}
	return score >= top[len(top)-1].Score, nil
}

// ClearScores deletes all scores for the given preset.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats aggregates every saved entry of a preset.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	LastPlayed time.Time // zero when nothing was saved
}

// GetGameStats returns the totals of a preset.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var last any
	err := s.db.QueryRow(selectStats, gameID).
		Scan(&stats.GamesCount, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

// SanitizeName makes a player name safe for the pipe-delimited format.
func SanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '|', '\n', '\r', '\t':
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "anonymous"
	}
	return name
}

// parseTime accepts what the driver returns for DATETIME columns: a
// time.Time, or a string for computed values like MAX(created_at).
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
