// Package storage provides SQLite-based persistence for finished rounds and
// headless simulation runs.
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
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Round is one finished game round.
type Round struct {
	ID         int64
	GameID     string
	Score      int // player's points
	Opponent   int // CPU points
	Won        bool
	Ticks      int
	Collisions int
	PeakSpeed  float64 // cells per second
	CreatedAt  time.Time
}

// SimRun is the summary of one headless simulation.
type SimRun struct {
	ID         int64
	Seed       int64
	Ticks      int
	Bounces    int
	SpeedUps   int
	PeakSpeed  float64
	FinalSpeed float64
	DiedAt     int // tick the ball left the field, -1 if it survived
	Hash       uint64
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			opponent INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			peak_speed REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS sim_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			bounces INTEGER NOT NULL,
			speed_ups INTEGER NOT NULL,
			peak_speed REAL NOT NULL,
			final_speed REAL NOT NULL,
			died_at INTEGER NOT NULL,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SaveRound records a finished round and returns its ID.
func (s *Store) SaveRound(r Round) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (game_id, score, opponent, won, ticks, collisions, peak_speed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Opponent, r.Won, r.Ticks, r.Collisions, r.PeakSpeed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRounds retrieves the best N rounds for the given game, by score and
// then by peak speed.
func (s *Store) TopRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, opponent, won, ticks, collisions, peak_speed, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY score DESC, peak_speed DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Opponent, &r.Won,
			&r.Ticks, &r.Collisions, &r.PeakSpeed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// BestScore returns the highest score for the given game.
// Returns 0 if no rounds exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRounds deletes all rounds for the given game.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Rounds     int
	Wins       int
	BestScore  int
	PeakSpeed  float64
	AvgTicks   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(MAX(peak_speed), 0), COALESCE(AVG(ticks), 0), MAX(created_at)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Rounds, &stats.Wins, &stats.BestScore, &stats.PeakSpeed, &stats.AvgTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SaveSimRun records a headless simulation summary and returns its ID.
// The hash is stored as hex text since SQLite integers are signed.
func (s *Store) SaveSimRun(r SimRun) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sim_runs (seed, ticks, bounces, speed_ups, peak_speed, final_speed, died_at, hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Ticks, r.Bounces, r.SpeedUps, r.PeakSpeed, r.FinalSpeed, r.DiedAt,
		fmt.Sprintf("%016x", r.Hash),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save sim run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SimRunsBySeed returns every stored run for a seed, oldest first. Runs of
// the same seed and config should all carry the same hash.
func (s *Store) SimRunsBySeed(seed int64) ([]SimRun, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, ticks, bounces, speed_ups, peak_speed, final_speed, died_at, hash, created_at
		 FROM sim_runs
		 WHERE seed = ?
		 ORDER BY id ASC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sim runs: %w", err)
	}
	defer rows.Close()

	var runs []SimRun
	for rows.Next() {
		var r SimRun
		var hash string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Ticks, &r.Bounces, &r.SpeedUps,
			&r.PeakSpeed, &r.FinalSpeed, &r.DiedAt, &hash, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if _, err := fmt.Sscanf(hash, "%x", &r.Hash); err != nil {
			return nil, fmt.Errorf("storage: bad hash %q: %w", hash, err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// LatestSimRun returns the most recent run, or nil when there is none.
func (s *Store) LatestSimRun() (*SimRun, error) {
	var r SimRun
	var hash string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, ticks, bounces, speed_ups, peak_speed, final_speed, died_at, hash, created_at
		 FROM sim_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &r.Seed, &r.Ticks, &r.Bounces, &r.SpeedUps,
		&r.PeakSpeed, &r.FinalSpeed, &r.DiedAt, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sim run: %w", err)
	}
	if _, err := fmt.Sscanf(hash, "%x", &r.Hash); err != nil {
		return nil, fmt.Errorf("storage: bad hash %q: %w", hash, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
