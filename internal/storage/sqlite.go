// Package storage provides SQLite-based persistence for 2048 scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/session"
)

const (
	minPlayerName = 3
	maxPlayerName = 20

	// DefaultLeaderboardSize is the number of entries Leaderboard returns by default.
	DefaultLeaderboardSize = 10
)

var (
	ErrInvalidPlayerName = errors.New("storage: player name must be 3-20 characters")
	ErrInvalidScore      = errors.New("storage: invalid score")
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Variant   string
	Player    string
	Score     int
	MaxTile   int
	Moves     int
	CreatedAt time.Time
}

// LeaderboardEntry is a player's best score for a variant.
type LeaderboardEntry struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_variant ON scores(variant);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(variant, score DESC);

		CREATE TABLE IF NOT EXISTS leaderboard (
			variant TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (variant, player)
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(variant, score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			variant TEXT PRIMARY KEY,
			score INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Score < 0 {
		return 0, ErrInvalidScore
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, variant, player, score, max_tile, moves) VALUES (?, ?, ?, ?, ?, ?)",
		e.GameID, e.Variant, e.Player, e.Score, e.MaxTile, e.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if _, err := s.RecordBest(e.Variant, e.Score); err != nil {
		return id, err
	}

	return id, nil
}

// TopScores retrieves the top N games for the given variant.
// Results are ordered by score descending.
func (s *Store) TopScores(variantID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, variant, player, score, max_tile, moves, created_at
		 FROM scores
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Variant, &e.Player, &e.Score, &e.MaxTile, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score for the given variant.
// Returns 0 if no scores exist.
func (s *Store) HighScore(variantID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE variant = ?",
		variantID,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// RecordBest raises the stored best score for a variant if score beats it.
// Reports whether the stored value changed.
func (s *Store) RecordBest(variantID string, score int) (bool, error) {
	if score < 0 {
		return false, ErrInvalidScore
	}

	res, err := s.db.Exec(
		`INSERT INTO best_scores (variant, score) VALUES (?, ?)
		 ON CONFLICT(variant) DO UPDATE SET score = excluded.score
		 WHERE excluded.score > best_scores.score`,
		variantID, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot record best score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// BestScoreSink returns a session.BestScoreNotifier that persists new best
// scores for variantID.
func (s *Store) BestScoreSink(variantID string) session.BestScoreNotifier {
	return session.NotifierFunc(func(score int) error {
		_, err := s.RecordBest(variantID, score)
		return err
	})
}

// NormalizePlayerName trims name and checks its length.
func NormalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minPlayerName || n > maxPlayerName {
		return "", ErrInvalidPlayerName
	}
	return name, nil
}

// SubmitScore records score as player's entry on the variant leaderboard.
// Only a new personal best replaces the stored entry; otherwise the call
// returns false together with the player's current best.
func (s *Store) SubmitScore(variantID, player string, score int) (bool, int, error) {
	player, err := NormalizePlayerName(player)
	if err != nil {
		return false, 0, err
	}
	if score < 0 {
		return false, 0, ErrInvalidScore
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var current sql.NullInt64
	err = tx.QueryRow(
		"SELECT score FROM leaderboard WHERE variant = ? AND player = ?",
		variantID, player,
	).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, 0, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}

	// Int64 is 0 when the player has no entry, so a zero score is never stored.
	if score <= int(current.Int64) {
		return false, int(current.Int64), nil
	}

	if _, err := tx.Exec(
		`INSERT INTO leaderboard (variant, player, score, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(variant, player) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		variantID, player, score,
	); err != nil {
		return false, 0, fmt.Errorf("storage: cannot submit score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return true, score, nil
}

// Leaderboard returns the best entries for a variant, highest first.
func (s *Store) Leaderboard(variantID string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT player, score, updated_at
		 FROM leaderboard
		 WHERE variant = ?
		 ORDER BY score DESC, player ASC
		 LIMIT ?`,
		variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes all scores, the best score and leaderboard entries for the given variant.
func (s *Store) ClearScores(variantID string) error {
	for _, table := range []string{"scores", "leaderboard", "best_scores"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE variant = ?", variantID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant    string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestTile   int
	LastPlayed time.Time
}

// GetVariantStats retrieves aggregated statistics for a specific variant.
func (s *Store) GetVariantStats(variantID string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variantID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(max_tile), 0)
		 FROM scores WHERE variant = ?`,
		variantID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.BestTile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE variant = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		variantID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
