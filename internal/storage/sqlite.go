// Package storage provides SQLite-based persistence for match results and
// user settings. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Result is one finished match.
type Result struct {
	ID        string
	Score     int
	Level     int
	Won       bool
	CreatedAt time.Time
}

// Stats aggregates a set of results. All fields are zero for an empty history.
type Stats struct {
	GamesCount   int
	Wins         int
	HighScore    int
	WinRate      int // Percent of wins, rounded to nearest
	AverageScore int // Truncated
	LastPlayed   time.Time
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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix nanoseconds so ordering survives sub-second saves.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_level ON results(level);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
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

// SaveResult records a finished match and returns the stored row.
func (s *Store) SaveResult(score, level int, won bool) (Result, error) {
	r := Result{
		ID:        uuid.NewString(),
		Score:     score,
		Level:     level,
		Won:       won,
		CreatedAt: s.now(),
	}

	_, err := s.db.Exec(
		"INSERT INTO results (id, score, level, won, created_at) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.Score, r.Level, boolToInt(r.Won), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot save result: %w", err)
	}

	return r, nil
}

// Results returns the most recent results first. A non-positive limit
// returns the whole history.
func (s *Store) Results(limit int) ([]Result, error) {
	query := `SELECT id, score, level, won, created_at
		 FROM results
		 ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var won int
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Score, &r.Level, &won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = time.Unix(0, createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// HighScore returns the best score ever recorded, or 0.
func (s *Store) HighScore() (int, error) {
	st, err := s.Stats()
	return st.HighScore, err
}

// WinRate returns the percentage of won matches, rounded to the nearest integer.
func (s *Store) WinRate() (int, error) {
	st, err := s.Stats()
	return st.WinRate, err
}

// AverageScore returns the mean score truncated to an integer.
func (s *Store) AverageScore() (int, error) {
	st, err := s.Stats()
	return st.AverageScore, err
}

// GamesCount returns the number of recorded matches.
func (s *Store) GamesCount() (int, error) {
	st, err := s.Stats()
	return st.GamesCount, err
}

// Stats computes the aggregates over the whole history.
func (s *Store) Stats() (Stats, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(created_at), 0)
		 FROM results`,
	)
	st, err := scanStats(row)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

// StatsByLevel computes the aggregates for every level that has been played.
func (s *Store) StatsByLevel() (map[int]Stats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), SUM(won), MAX(score), SUM(score), MAX(created_at)
		 FROM results
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]Stats)
	for rows.Next() {
		var level int
		var count, wins, high int
		var total, last int64
		if err := rows.Scan(&level, &count, &wins, &high, &total, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[level] = aggregate(count, wins, high, total, last)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes the whole match history.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM results")
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanStats(row *sql.Row) (Stats, error) {
	var count, wins, high int
	var total, last int64
	if err := row.Scan(&count, &wins, &high, &total, &last); err != nil {
		return Stats{}, err
	}
	return aggregate(count, wins, high, total, last), nil
}

func aggregate(count, wins, high int, total, last int64) Stats {
	st := Stats{
		GamesCount: count,
		Wins:       wins,
		HighScore:  high,
	}
	if count == 0 {
		return st
	}
	st.WinRate = int(math.Round(float64(wins) * 100 / float64(count)))
	st.AverageScore = int(total / int64(count))
	st.LastPlayed = time.Unix(0, last)
	return st
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
