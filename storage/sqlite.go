package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

// EpisodeRecord is one finished episode as persisted.
type EpisodeRecord struct {
	Experiment string
	Run        int
	Episode    int
	NTargs     int
	Steps      int
	Reward     float64
	Success    bool
}

// SQLiteStore persists episode records to a sqlite database file.
type SQLiteStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS episodes (
			experiment TEXT NOT NULL,
			run INTEGER NOT NULL,
			episode INTEGER NOT NULL,
			n_targs INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			reward REAL NOT NULL,
			success INTEGER NOT NULL,
			PRIMARY KEY (experiment, run, episode)
		)
	`)
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) SaveEpisode(ctx context.Context, rec EpisodeRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO episodes (experiment, run, episode, n_targs, steps, reward, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(experiment, run, episode) DO UPDATE SET
			n_targs = excluded.n_targs,
			steps = excluded.steps,
			reward = excluded.reward,
			success = excluded.success
	`, rec.Experiment, rec.Run, rec.Episode, rec.NTargs, rec.Steps, rec.Reward, boolToInt(rec.Success))
	return err
}

// ListEpisodes returns every persisted record for an experiment ordered by
// run and episode.
func (s *SQLiteStore) ListEpisodes(ctx context.Context, experiment string) ([]EpisodeRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT experiment, run, episode, n_targs, steps, reward, success
		FROM episodes WHERE experiment = ?
		ORDER BY run, episode
	`, experiment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EpisodeRecord, 0)
	for rows.Next() {
		var rec EpisodeRecord
		var success int
		if err := rows.Scan(&rec.Experiment, &rec.Run, &rec.Episode, &rec.NTargs, &rec.Steps, &rec.Reward, &success); err != nil {
			return nil, err
		}
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
