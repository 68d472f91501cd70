// Package storage provides SQLite-based persistence for player preferences
// and finished play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// KeyRandomColors is the preference that shuffles the piece palette.
const KeyRandomColors = "random_colors"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished (or abandoned) play session.
type SessionRecord struct {
	ID         int64
	LevelID    string
	Engine     string
	Origin     string // "window", "term" or "ssh:<user>"
	Moves      int
	Actions    int
	BlockCount int
	Duration   int // seconds
	CreatedAt  time.Time
}

// LevelStats aggregates the sessions of one level.
type LevelStats struct {
	LevelID    string
	Sessions   int
	BestMoves  int // fewest moves in a session with at least one move
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			engine TEXT NOT NULL,
			origin TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			actions INTEGER NOT NULL DEFAULT 0,
			block_count INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level_id ON sessions(level_id);
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

// GetBool reads a boolean preference. found is false when the key was never
// set.
func (s *Store) GetBool(key string) (value, found bool, err error) {
	var raw string
	err = s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("storage: cannot read preference %s: %w", key, err)
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("storage: preference %s is not a boolean: %w", key, err)
	}
	return v, true, nil
}

// SetBool stores a boolean preference.
func (s *Store) SetBool(key string, value bool) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, strconv.FormatBool(value),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
	}
	return nil
}

// DeletePreference removes a preference, restoring its default.
func (s *Store) DeletePreference(key string) error {
	if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete preference %s: %w", key, err)
	}
	return nil
}

// RandomColors reports whether the shuffled palette was requested. An unset
// preference means false.
func (s *Store) RandomColors() (bool, error) {
	v, _, err := s.GetBool(KeyRandomColors)
	return v, err
}

// SaveSession records a play session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (level_id, engine, origin, moves, actions, block_count, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.LevelID, rec.Engine, rec.Origin, rec.Moves, rec.Actions, rec.BlockCount, rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions returns the most recent sessions, newest first. An empty
// levelID matches every level.
func (s *Store) RecentSessions(levelID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, engine, origin, moves, actions, block_count, duration_secs, created_at
		 FROM sessions
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Engine, &r.Origin, &r.Moves, &r.Actions, &r.BlockCount, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GetLevelStats retrieves aggregated statistics for one level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}
	var best sql.NullInt64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(CASE WHEN moves > 0 THEN moves END), MAX(created_at)
		 FROM sessions WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Sessions, &best, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if best.Valid {
		stats.BestMoves = int(best.Int64)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
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
