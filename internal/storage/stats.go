package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Players    int // distinct named players
	HighScore  int
	Best       int // persisted best slot, may predate the run history
	MaxLevel   int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT NULLIF(player, '')),
		        COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Players, &stats.HighScore, &stats.MaxLevel,
		&stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	best, err := s.LoadBest(gameID)
	if err != nil {
		return nil, err
	}
	stats.Best = max(best, stats.HighScore)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT s.game_id, COUNT(*), COUNT(DISTINCT NULLIF(s.player, '')), MAX(s.score), MAX(s.level), AVG(s.score), SUM(s.score),
		        MAX(s.created_at), COALESCE(b.score, 0)
		 FROM scores s
		 LEFT JOIN best_scores b ON b.game_id = s.game_id
		 GROUP BY s.game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		var best int
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.Players, &gs.HighScore, &gs.MaxLevel,
			&gs.AvgScore, &gs.TotalScore, &lastPlayed, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		gs.Best = max(best, gs.HighScore)

		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
