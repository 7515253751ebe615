package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is a finished game to record.
type Run struct {
	GameID string
	Player string // empty for anonymous runs
	Score  int
	Level  int
}

// ScoreEntry is one recorded run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Level     int
	CreatedAt time.Time
}

// PlayerBest is one player's best run in a game.
type PlayerBest struct {
	Player string
	Best   int
	Runs   int
}

const scoreColumns = "id, game_id, player, score, level, created_at"

// RecordRun stores a finished run and returns its row ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	level := max(r.Level, 1)
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, level) VALUES (?, ?, ?, ?)",
		r.GameID, r.Player, r.Score, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit runs of a game, highest score first.
// Ties go to the earlier run. A limit of zero or less means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
}

// AllScores returns every run of a game, highest score first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC",
		gameID,
	)
}

// PlayerScores returns the runs one player recorded in a game, newest first.
func (s *Store) PlayerScores(gameID, player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? AND player = ? ORDER BY id DESC LIMIT ?",
		gameID, player, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Level, &createdAt); err != nil {
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

// TopPlayers ranks the named players of a game by their best run.
// Anonymous runs are left out.
func (s *Store) TopPlayers(gameID string, limit int) ([]PlayerBest, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT player, MAX(score), COUNT(*)
		 FROM scores
		 WHERE game_id = ? AND player <> ''
		 GROUP BY player
		 ORDER BY MAX(score) DESC, player ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerBest
	for rows.Next() {
		var p PlayerBest
		if err := rows.Scan(&p.Player, &p.Best, &p.Runs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// HighScore returns the highest recorded run of a game, 0 without runs.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores removes the run history and the best slot of a game.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"scores", "best_scores"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
