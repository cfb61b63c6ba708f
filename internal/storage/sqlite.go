// Package storage provides SQLite-based persistence for finished battles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/seabattle/internal/battle"
)

const timeLayout = "2006-01-02 15:04:05"

// Winner values stored in the matches table.
const (
	WinnerPlayer   = "player"
	WinnerOpponent = "opponent"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished game.
type MatchRecord struct {
	ID            int64
	MatchID       string
	PlayerName    string
	OpponentName  string
	Winner        string // WinnerPlayer or WinnerOpponent
	PlayerHits    int
	OpponentHits  int
	PlayerShots   int
	OpponentShots int
	HitsForWin    int
	Duration      int // Duration in seconds
	CreatedAt     time.Time
}

// PlayerWon reports whether the human side won.
func (r MatchRecord) PlayerWon() bool {
	return r.Winner == WinnerPlayer
}

// WinnerName returns the display name of the winner.
func (r MatchRecord) WinnerName() string {
	if r.PlayerWon() {
		return r.PlayerName
	}
	return r.OpponentName
}

// PlayerStats aggregates a player's results.
type PlayerStats struct {
	PlayerName string
	Games      int
	Wins       int
	Losses     int
	Shots      int
	Hits       int
	LastPlayed time.Time
}

// Accuracy returns the hit ratio over all recorded shots.
func (p PlayerStats) Accuracy() float64 {
	if p.Shots == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Shots)
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			player_name TEXT NOT NULL,
			opponent_name TEXT NOT NULL,
			winner TEXT NOT NULL,
			player_hits INTEGER NOT NULL DEFAULT 0,
			opponent_hits INTEGER NOT NULL DEFAULT 0,
			player_shots INTEGER NOT NULL DEFAULT 0,
			opponent_shots INTEGER NOT NULL DEFAULT 0,
			hits_for_win INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_player ON matches(player_name);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a finished game. A zero CreatedAt is stored as now.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(r MatchRecord) (int64, error) {
	if r.MatchID == "" {
		return 0, errors.New("storage: match id is required")
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, player_name, opponent_name, winner, player_hits, opponent_hits,
		  player_shots, opponent_shots, hits_for_win, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID,
		r.PlayerName,
		r.OpponentName,
		r.Winner,
		r.PlayerHits,
		r.OpponentHits,
		r.PlayerShots,
		r.OpponentShots,
		r.HitsForWin,
		r.Duration,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordMatch implements battle.ResultRecorder.
// This adapter lets a session persist results without depending on storage.
func (s *Store) RecordMatch(result battle.MatchResult) error {
	winner := WinnerOpponent
	if result.Winner == battle.SidePlayer {
		winner = WinnerPlayer
	}

	_, err := s.SaveMatch(MatchRecord{
		MatchID:       result.MatchID,
		PlayerName:    result.PlayerName,
		OpponentName:  result.OpponentName,
		Winner:        winner,
		PlayerHits:    result.Score.PlayerHits,
		OpponentHits:  result.Score.OpponentHits,
		PlayerShots:   result.Score.PlayerShots,
		OpponentShots: result.Score.OpponentShots,
		HitsForWin:    result.HitsForWin,
		Duration:      int(result.Duration / time.Second),
		CreatedAt:     result.StartedAt.Add(result.Duration),
	})
	return err
}

// Ensure Store implements ResultRecorder
var _ battle.ResultRecorder = (*Store)(nil)

const selectMatch = `SELECT id, match_id, player_name, opponent_name, winner,
		        player_hits, opponent_hits, player_shots, opponent_shots,
		        hits_for_win, duration_secs, created_at
		 FROM matches`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var r MatchRecord
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.MatchID,
		&r.PlayerName,
		&r.OpponentName,
		&r.Winner,
		&r.PlayerHits,
		&r.OpponentHits,
		&r.PlayerShots,
		&r.OpponentShots,
		&r.HitsForWin,
		&r.Duration,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	r, err := scanMatch(s.db.QueryRow(selectMatch+` WHERE match_id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &r, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(selectMatch+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// PlayerMatches retrieves the most recent matches of one player, newest first.
func (s *Store) PlayerMatches(playerName string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		selectMatch+` WHERE player_name = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		playerName, limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PlayerStats retrieves aggregated results for a player.
func (s *Store) PlayerStats(playerName string) (*PlayerStats, error) {
	stats := &PlayerStats{PlayerName: playerName}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(player_shots), 0),
		        COALESCE(SUM(player_hits), 0)
		 FROM matches WHERE player_name = ?`,
		WinnerPlayer, playerName,
	).Scan(&stats.Games, &stats.Wins, &stats.Shots, &stats.Hits)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.Losses = stats.Games - stats.Wins

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE player_name = ? ORDER BY created_at DESC LIMIT 1`,
		playerName,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearMatches deletes all recorded matches.
func (s *Store) ClearMatches() error {
	_, err := s.db.Exec("DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}
