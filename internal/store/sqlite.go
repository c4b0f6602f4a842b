package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements DB on top of modernc.org/sqlite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the tables and indexes if they are missing.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			point_count INTEGER NOT NULL DEFAULT 0,
			workers INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			params_json TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			k INTEGER NOT NULL,
			r INTEGER NOT NULL,
			rule TEXT NOT NULL,
			langton REAL NOT NULL,
			random INTEGER NOT NULL,
			repetitions INTEGER NOT NULL,
			cycles INTEGER NOT NULL,
			mean_cycle REAL NOT NULL,
			final_activity REAL NOT NULL,
			steps INTEGER NOT NULL,
			error TEXT,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_points_run_idx ON points(run_id, idx)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts run, assigning a fresh ID when it has none.
func (s *SQLiteDB) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	params := run.ParamsJSON
	if params == "" {
		params = "{}"
	}

	_, err := s.db.Exec(`INSERT INTO runs (
		id, source, point_count, workers, elapsed_ms, params_json
	) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.PointCount, run.Workers, run.Elapsed.Milliseconds(), params,
	)
	return err
}

// SavePoints stores points under runID in a single transaction.
func (s *SQLiteDB) SavePoints(runID string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO points (
		run_id, idx, width, height, k, r, rule, langton, random,
		repetitions, cycles, mean_cycle, final_activity, steps, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		randomInt := 0
		if p.Random {
			randomInt = 1
		}
		// Rule numbers can exceed int64, so they are kept as decimal text.
		_, err := stmt.Exec(runID, p.Index, p.Width, p.Height, p.K, p.R,
			strconv.FormatUint(p.Rule, 10), p.Langton, randomInt,
			p.Repetitions, p.Cycles, p.MeanCycle, p.FinalActivity, p.Steps, p.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert point %d: %w", p.Index, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID.
func (s *SQLiteDB) GetRun(id string) (*Run, error) {
	var run Run
	var elapsedMS int64
	var paramsJSON sql.NullString

	err := s.db.QueryRow(`SELECT id, source, point_count, workers, elapsed_ms, params_json, created_at
		FROM runs WHERE id = ?`, id).Scan(
		&run.ID, &run.Source, &run.PointCount, &run.Workers, &elapsedMS, &paramsJSON, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	run.ParamsJSON = "{}"
	if paramsJSON.Valid {
		run.ParamsJSON = paramsJSON.String
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// means no limit.
func (s *SQLiteDB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT id, source, point_count, workers, elapsed_ms, params_json, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var elapsedMS int64
		var paramsJSON sql.NullString
		if err := rows.Scan(&run.ID, &run.Source, &run.PointCount, &run.Workers,
			&elapsedMS, &paramsJSON, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		run.ParamsJSON = "{}"
		if paramsJSON.Valid {
			run.ParamsJSON = paramsJSON.String
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListPoints returns the points of a run in index order.
func (s *SQLiteDB) ListPoints(runID string) ([]Point, error) {
	rows, err := s.db.Query(`SELECT run_id, idx, width, height, k, r, rule, langton, random,
		repetitions, cycles, mean_cycle, final_activity, steps, error
		FROM points WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		var ruleText string
		var randomInt int
		var errText sql.NullString
		if err := rows.Scan(&p.RunID, &p.Index, &p.Width, &p.Height, &p.K, &p.R,
			&ruleText, &p.Langton, &randomInt, &p.Repetitions, &p.Cycles,
			&p.MeanCycle, &p.FinalActivity, &p.Steps, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p.Rule, err = strconv.ParseUint(ruleText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: bad rule %q: %w", p.Index, ruleText, err)
		}
		p.Random = randomInt != 0
		if errText.Valid {
			p.Error = errText.String
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

var _ DB = (*SQLiteDB)(nil)
