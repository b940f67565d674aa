// Package cache records generation runs in SQLite so unchanged inputs can be
// skipped. A run is fresh when its input+settings fingerprint matches and every
// file it wrote still hashes to what was written.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/resgen/config"
	"github.com/teranos/resgen/db"
	"github.com/teranos/resgen/errors"
	"github.com/teranos/resgen/logger"
)

// Output is one file written by a run
type Output struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Run is one recorded generation
type Run struct {
	ID          string    `json:"id"`
	InputPath   string    `json:"input_path"`
	Fingerprint string    `json:"fingerprint"`
	Language    string    `json:"language"`
	Accessors   int       `json:"accessors"`
	Unresolved  int       `json:"unresolved"`
	Outputs     []Output  `json:"outputs,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the run ledger
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New wraps an already migrated database
func New(conn *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: conn, logger: log, now: time.Now}
}

// Open opens (creating if needed) the ledger at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
			return nil, errors.Wrapf(err, "failed to create cache directory %s", dir)
		}
	}
	log := logger.ComponentLogger("cache")
	conn, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, err
	}
	return New(conn, log), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the latest run recorded for inputPath, or ErrNotFound
func (s *Store) Lookup(ctx context.Context, inputPath string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, input_path, fingerprint, language, accessors, unresolved, created_at
		FROM runs
		WHERE input_path = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`, inputPath).Scan(
		&run.ID, &run.InputPath, &run.Fingerprint, &run.Language,
		&run.Accessors, &run.Unresolved, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "no run recorded for %s", inputPath)
	}
	if err != nil {
		return nil, wrapDB(err, "failed to look up run for %s", inputPath)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, sha256 FROM run_outputs WHERE run_id = ? ORDER BY path`, run.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load outputs of run %s", run.ID)
	}
	defer rows.Close()

	for rows.Next() {
		var out Output
		if err := rows.Scan(&out.Path, &out.SHA256); err != nil {
			return nil, errors.Wrapf(err, "failed to scan output of run %s", run.ID)
		}
		run.Outputs = append(run.Outputs, out)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to load outputs of run %s", run.ID)
	}
	return &run, nil
}

// Record stores run, assigning an id and timestamp when absent.
// The run and its outputs are written in one transaction.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.InputPath == "" {
		return run, errors.NewInvalidRequestError("run has no input path")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, wrapDB(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, fingerprint, language, accessors, unresolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.Fingerprint, run.Language,
		run.Accessors, run.Unresolved, run.CreatedAt,
	)
	if err != nil {
		return run, errors.Wrapf(err, "failed to record run for %s", run.InputPath)
	}

	for _, out := range run.Outputs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_outputs (run_id, path, sha256) VALUES (?, ?, ?)`,
			run.ID, out.Path, out.SHA256); err != nil {
			return run, errors.Wrapf(err, "failed to record output %s", out.Path)
		}
	}

	if err := tx.Commit(); err != nil {
		return run, errors.Wrap(err, "failed to commit run")
	}

	s.logger.Debugw("Recorded run",
		logger.FieldRunID, run.ID,
		logger.FieldFile, run.InputPath,
		logger.FieldCount, len(run.Outputs))
	return run, nil
}

// Prune keeps the newest keep runs per input path and deletes the rest.
// Returns the number of runs deleted.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, errors.NewInvalidRequestError("keep must be non-negative, got %d", keep)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM runs WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY input_path ORDER BY created_at DESC, rowid DESC
				) AS rn
				FROM runs
			) WHERE rn > ?
		)`, keep)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune runs")
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count pruned runs")
	}

	// Foreign keys may be off on connections not opened through db.Open
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM run_outputs WHERE run_id NOT IN (SELECT id FROM runs)`); err != nil {
		return 0, errors.Wrap(err, "failed to prune run outputs")
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit prune")
	}

	if deleted > 0 {
		s.logger.Debugw("Pruned runs", logger.FieldCount, deleted)
	}
	return deleted, nil
}

// Fresh reports whether the latest run for inputPath has the given fingerprint
// and all of its outputs are still on disk unchanged
func (s *Store) Fresh(ctx context.Context, inputPath, fingerprint string) (bool, error) {
	run, err := s.Lookup(ctx, inputPath)
	if errors.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if run.Fingerprint != fingerprint || len(run.Outputs) == 0 {
		return false, nil
	}

	for _, out := range run.Outputs {
		sum, err := HashFile(out.Path)
		if os.IsNotExist(errors.UnwrapAll(err)) {
			s.logger.Debugw("Output missing", logger.FieldOutput, out.Path)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if sum != out.SHA256 {
			s.logger.Debugw("Output changed on disk", logger.FieldOutput, out.Path)
			return false, nil
		}
	}
	return true, nil
}

// wrapDB wraps err, replacing a driver's closed-connection error with db.ErrDatabaseClosed
func wrapDB(err error, format string, args ...interface{}) error {
	if db.IsDatabaseClosed(err) && !errors.Is(err, db.ErrDatabaseClosed) {
		return errors.Wrapf(db.ErrDatabaseClosed, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

// Fingerprint hashes an input's content together with the settings that shape its output
func Fingerprint(content []byte, settings ...string) string {
	h := sha256.New()
	h.Write(content)
	for _, s := range settings {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashBytes returns the hex SHA-256 of data
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 of the file at path
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
