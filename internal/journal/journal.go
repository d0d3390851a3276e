// Package journal provides the durable command journal and its
// deterministic replay.
//
// The journal records every field creation and every executed command,
// stamped with the interpreter's logical clock. Replay re-executes the
// journal through the identical interpreter code path - there is no
// special replay mode - and verifies that every command reproduces its
// recorded outcome. Any divergence means non-determinism and is reported
// as an error.
package journal

import (
	"database/sql"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a sqlite-backed command journal for one interpreter run.
// It implements interp.Recorder.
type Journal struct {
	db    *sql.DB
	runID string
}

// Open creates or opens the journal database at path and starts a new
// run with a fresh UUID token. UUIDv7 tokens sort chronologically, so
// run ordering stays stable even within one created_at second.
func Open(path string) (*Journal, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	token, err := uuid.NewV7()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("generate run token: %w", err)
	}
	runID := token.String()
	if _, err := db.Exec(`INSERT INTO runs (id) VALUES (?)`, runID); err != nil {
		db.Close()
		return nil, fmt.Errorf("start run: %w", err)
	}

	return &Journal{db: db, runID: runID}, nil
}

// OpenReadOnly opens an existing journal database without starting a
// run. The connection is mode=ro: no schema or journal pragma is
// applied, a missing database is an error rather than created, and any
// write through the handle fails. Used by replay.
func OpenReadOnly(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply busy_timeout: %w", err)
	}

	return &Journal{db: db}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// Single writer matches the interpreter's sequential execution and
	// avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// RunID returns the UUID token of the run this journal is recording.
// Empty for read-only journals.
func (j *Journal) RunID() string {
	return j.runID
}

// RecordCreate journals a successful field creation.
func (j *Journal) RecordCreate(seq int64, name string, energy, frequency float64, position [3]float64) error {
	_, err := j.db.Exec(
		`INSERT INTO events (run_id, seq, type, name, energy, frequency, pos_x, pos_y, pos_z)
		 VALUES (?, ?, 'create', ?, ?, ?, ?, ?, ?)`,
		j.runID, seq, name, energy, frequency, position[0], position[1], position[2],
	)
	if err != nil {
		return fmt.Errorf("record create %q: %w", name, err)
	}
	return nil
}

// RecordExecute journals an execute attempt and its outcome kind.
func (j *Journal) RecordExecute(seq int64, command, status string) error {
	_, err := j.db.Exec(
		`INSERT INTO events (run_id, seq, type, command, status) VALUES (?, ?, 'execute', ?, ?)`,
		j.runID, seq, command, status,
	)
	if err != nil {
		return fmt.Errorf("record command: %w", err)
	}
	return nil
}

// Runs lists all run tokens in creation order.
func (j *Journal) Runs() ([]string, error) {
	rows, err := j.db.Query(`SELECT id FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently started run token.
func (j *Journal) LatestRun() (string, error) {
	runs, err := j.Runs()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("journal contains no runs")
	}
	return runs[len(runs)-1], nil
}

// Event is one journaled step of a run.
type Event struct {
	Seq       int64
	Type      string // "create" | "execute"
	Name      string
	Energy    float64
	Frequency float64
	Position  [3]float64
	Command   string
	Status    string
}

// Events reads a run's journal in logical clock order.
func (j *Journal) Events(runID string) ([]Event, error) {
	rows, err := j.db.Query(
		`SELECT seq, type,
		        COALESCE(name, ''), COALESCE(energy, 0), COALESCE(frequency, 0),
		        COALESCE(pos_x, 0), COALESCE(pos_y, 0), COALESCE(pos_z, 0),
		        COALESCE(command, ''), COALESCE(status, '')
		 FROM events WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(
			&ev.Seq, &ev.Type,
			&ev.Name, &ev.Energy, &ev.Frequency,
			&ev.Position[0], &ev.Position[1], &ev.Position[2],
			&ev.Command, &ev.Status,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
