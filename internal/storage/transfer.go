package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/blockbuster/internal/core"
)

// FormatScoreLine renders one record as "score|level|name".
func FormatScoreLine(rec core.ScoreRecord) string {
	return fmt.Sprintf("%d|%d|%s", rec.Score, rec.Level, SanitizeName(rec.Name))
}

// ParseScoreLine parses "score|level|name". The name may be empty.
func ParseScoreLine(line string) (core.ScoreRecord, error) {
	parts := strings.SplitN(strings.TrimSpace(line), "|", 3)
	if len(parts) != 3 {
		return core.ScoreRecord{}, fmt.Errorf("storage: want score|level|name, got %q", line)
	}
	score, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || score < 0 {
		return core.ScoreRecord{}, fmt.Errorf("storage: bad score in %q", line)
	}
	level, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || level < 1 {
		return core.ScoreRecord{}, fmt.Errorf("storage: bad level in %q", line)
	}
	return core.ScoreRecord{Score: score, Level: level, Name: SanitizeName(parts[2])}, nil
}

// Export writes the preset's top scores, best first, one line each.
func (s *Store) Export(w io.Writer, gameID string, limit int) (int, error) {
	entries, err := s.TopScores(gameID, limit)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, FormatScoreLine(e.Record())); err != nil {
			return 0, fmt.Errorf("storage: export: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("storage: export: %w", err)
	}
	return len(entries), nil
}

// ImportResult counts what Import did.
type ImportResult struct {
	Imported int
	Skipped  int // malformed lines
}

// Import reads lines written by Export and stores them under gameID in one
// transaction. Malformed lines are skipped; blank lines and '#' comments are
// ignored.
func (s *Store) Import(r io.Reader, gameID string) (ImportResult, error) {
	var res ImportResult

	tx, err := s.db.Begin()
	if err != nil {
		return res, fmt.Errorf("storage: import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	sessionID := NewSessionID()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseScoreLine(line)
		if err != nil {
			res.Skipped++
			continue
		}
		if _, err := saveScore(tx, gameID, rec, sessionID); err != nil {
			return ImportResult{}, err
		}
		res.Imported++
	}
	if err := scanner.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("storage: import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("storage: import: %w", err)
	}
	return res, nil
}
