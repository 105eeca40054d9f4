package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Operation identifies what a run did.
type Operation string

const (
	OpTimestamps Operation = "timestamps"
	OpAlign      Operation = "align"
	OpStripPunct Operation = "strip-punct"
)

// Status tracks a run's lifecycle.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one recorded processing run.
type Run struct {
	ID           int64
	RunID        string
	DialogueID   string
	Operation    Operation
	AudioPath    string
	Status       Status
	PhraseCount  int
	WordCount    int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const runColumns = `id, run_id, dialogue_id, operation, audio_path, status,
    phrase_count, word_count, error_message, started_at, finished_at`

// RecordStart inserts a running entry and returns it.
func (s *Store) RecordStart(ctx context.Context, runID, dialogueID string, op Operation, audioPath string) (*Run, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, dialogue_id, operation, audio_path, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		dialogueID,
		string(op),
		nullableString(audioPath),
		string(StatusRunning),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// RecordResult finalizes a run. A non-empty errorMessage marks it failed.
func (s *Store) RecordResult(ctx context.Context, id int64, phraseCount, wordCount int, errorMessage string) error {
	status := StatusCompleted
	if errorMessage != "" {
		status = StatusFailed
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET status = ?, phrase_count = ?, word_count = ?, error_message = ?, finished_at = ?
         WHERE id = ?`,
		string(status),
		phraseCount,
		wordCount,
		nullableString(errorMessage),
		now.Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// GetByID fetches a run by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ListByDialogue returns runs for one dialogue, newest first.
func (s *Store) ListByDialogue(ctx context.Context, dialogueID string) ([]*Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE dialogue_id = ? ORDER BY started_at DESC, id DESC`,
		dialogueID,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs by dialogue: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run          Run
		op           string
		status       string
		audioPath    sql.NullString
		errorMessage sql.NullString
		startedAt    string
		finishedAt   sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&run.RunID,
		&run.DialogueID,
		&op,
		&audioPath,
		&status,
		&run.PhraseCount,
		&run.WordCount,
		&errorMessage,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Operation = Operation(op)
	run.Status = Status(status)
	run.AudioPath = audioPath.String
	run.ErrorMessage = errorMessage.String

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid {
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &parsed
	}

	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
