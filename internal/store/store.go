// Package store keeps a SQLite history of analyzed reports keyed by the
// content hash of the source file.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/mwiater/hwcompare/internal/analyzer"
)

var (
	ErrNotFound  = errors.New("analysis not found")
	ErrAmbiguous = errors.New("reference matches more than one analysis")
)

// minHashPrefix is the shortest hash prefix Find accepts.
const minHashPrefix = 6

// Record is one stored analysis.
type Record struct {
	ID         int64                  `json:"id"`
	Hash       string                 `json:"hash"`
	RunID      string                 `json:"runId"`
	Name       string                 `json:"name"`
	Path       string                 `json:"path"`
	TjMax      float64                `json:"tjmax"`
	AnalyzedAt time.Time              `json:"analyzedAt"`
	Metrics    analyzer.ReportMetrics `json:"metrics"`
	Summary    []string               `json:"summary"`
}

// ShortHash is the first twelve hex digits of Hash.
func (r Record) ShortHash() string {
	if len(r.Hash) <= 12 {
		return r.Hash
	}
	return r.Hash[:12]
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and migrates its schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}
	var version int
	err = tx.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if _, err := tx.ExecContext(ctx, analysesTable); err != nil {
			return fmt.Errorf("create analyses table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("update schema version: %w", err)
		}
	}
	return tx.Commit()
}

// Hash returns the hex BLAKE3-256 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile hashes the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return Hash(data), nil
}

// NewRunID returns an identifier shared by every record of one invocation.
func NewRunID() string { return uuid.NewString() }

// Save inserts rec, replacing any earlier analysis of the same file
// content. Empty RunID and zero AnalyzedAt are filled in.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.Hash == "" {
		return Record{}, errors.New("store: record has no hash")
	}
	if rec.RunID == "" {
		rec.RunID = NewRunID()
	}
	if rec.AnalyzedAt.IsZero() {
		rec.AnalyzedAt = s.now()
	}

	metrics, err := marshal(rec.Metrics)
	if err != nil {
		return Record{}, fmt.Errorf("encode metrics: %w", err)
	}
	summary, err := marshal(rec.Summary)
	if err != nil {
		return Record{}, fmt.Errorf("encode summary: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
INSERT INTO analyses (hash, run_id, name, path, tjmax, analyzed_at, metrics, summary)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(hash) DO UPDATE SET
    run_id = excluded.run_id,
    name = excluded.name,
    path = excluded.path,
    tjmax = excluded.tjmax,
    analyzed_at = excluded.analyzed_at,
    metrics = excluded.metrics,
    summary = excluded.summary
RETURNING id`,
		rec.Hash, rec.RunID, rec.Name, rec.Path, rec.TjMax, rec.AnalyzedAt.UnixMicro(), metrics, summary,
	).Scan(&rec.ID)
	if err != nil {
		return Record{}, fmt.Errorf("save analysis %s: %w", rec.Name, err)
	}
	return rec, nil
}

const selectColumns = "SELECT id, hash, run_id, name, path, tjmax, analyzed_at, metrics, summary FROM analyses"

// List returns every stored analysis, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY analyzed_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

// Find resolves ref to one analysis. ref is either a report name, in
// which case the newest analysis with that name wins, or a hash prefix of
// at least six hex digits.
func (s *Store) Find(ctx context.Context, ref string) (Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Record{}, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE name = ? ORDER BY analyzed_at DESC, id DESC LIMIT 1", ref)
	if err != nil {
		return Record{}, fmt.Errorf("find %q: %w", ref, err)
	}
	byName, err := scanAll(rows)
	rows.Close()
	if err != nil {
		return Record{}, err
	}
	if len(byName) == 1 {
		return byName[0], nil
	}

	if len(ref) < minHashPrefix {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	rows, err = s.db.QueryContext(ctx, selectColumns+" WHERE hash LIKE ? ORDER BY id LIMIT 2", strings.ToLower(ref)+"%")
	if err != nil {
		return Record{}, fmt.Errorf("find %q: %w", ref, err)
	}
	byHash, err := scanAll(rows)
	rows.Close()
	if err != nil {
		return Record{}, err
	}
	switch len(byHash) {
	case 0:
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	case 1:
		return byHash[0], nil
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
	}
}

func scanAll(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var (
			rec              Record
			micros           int64
			metrics, summary []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Hash, &rec.RunID, &rec.Name, &rec.Path, &rec.TjMax, &micros, &metrics, &summary); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.AnalyzedAt = time.UnixMicro(micros)
		if err := unmarshal(metrics, &rec.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics of %s: %w", rec.Name, err)
		}
		if err := unmarshal(summary, &rec.Summary); err != nil {
			return nil, fmt.Errorf("decode summary of %s: %w", rec.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
