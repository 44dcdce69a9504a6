// Package history keeps a SQLite log of generated layouts so a run can be
// looked up by id or seed and re-inspected without regenerating it.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"dungeonlayout/pkg/game/generator"
	"dungeonlayout/pkg/game/history/migrations"
)

var (
	// ErrNotFound indicates a requested run is missing.
	ErrNotFound = errors.New("history: run not found")
	// ErrNotConfigured indicates a nil or closed store.
	ErrNotConfigured = errors.New("history: storage is not configured")
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// Run is the summary row of one stored generation.
type Run struct {
	ID          int64
	Seed        int64
	Profile     string
	GridSize    int
	Rooms       int
	Corridors   int
	Dropped     int
	Unreachable int
	CreatedAt   time.Time
}

// Store persists generated layouts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the history database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save stores layout under the given profile name. A zero createdAt is
// replaced with the current time.
func (s *Store) Save(ctx context.Context, profile string, layout *generator.LevelLayout, createdAt time.Time) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Run{}, ErrNotConfigured
	}
	if layout == nil {
		return Run{}, fmt.Errorf("history: layout is required")
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	payload, err := json.Marshal(layout)
	if err != nil {
		return Run{}, fmt.Errorf("encode layout: %w", err)
	}
	run := Run{
		Seed:        layout.Seed(),
		Profile:     strings.TrimSpace(profile),
		GridSize:    layout.Size(),
		Rooms:       len(layout.Rooms()),
		Corridors:   len(layout.Links()),
		Dropped:     len(layout.Dropped()),
		Unreachable: len(layout.Unreachable()),
		CreatedAt:   fromMillis(toMillis(createdAt)),
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (
		   seed,
		   profile,
		   grid_size,
		   rooms,
		   corridors,
		   dropped,
		   unreachable,
		   layout_json,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed,
		run.Profile,
		run.GridSize,
		run.Rooms,
		run.Corridors,
		run.Dropped,
		run.Unreachable,
		payload,
		toMillis(run.CreatedAt),
	)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return Run{}, fmt.Errorf("save run id: %w", err)
	}
	return run, nil
}

const runColumns = `id, seed, profile, grid_size, rooms, corridors, dropped, unreachable, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner, extra ...any) (Run, error) {
	var (
		run       Run
		createdAt int64
	)
	dest := []any{&run.ID, &run.Seed, &run.Profile, &run.GridSize, &run.Rooms, &run.Corridors, &run.Dropped, &run.Unreachable, &createdAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Run{}, err
	}
	run.CreatedAt = fromMillis(createdAt)
	return run, nil
}

// Get returns one stored run and its decoded layout.
func (s *Store) Get(ctx context.Context, id int64) (Run, *generator.LevelLayout, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, nil, err
	}
	if s == nil || s.sqlDB == nil {
		return Run{}, nil, ErrNotConfigured
	}

	var payload []byte
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+runColumns+`, layout_json FROM runs WHERE id = ?`, id)
	run, err := scanRun(row, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("get run %d: %w", id, err)
	}

	var layout generator.LevelLayout
	if err := json.Unmarshal(payload, &layout); err != nil {
		return Run{}, nil, fmt.Errorf("decode run %d: %w", id, err)
	}
	return run, &layout, nil
}

// List returns the most recent runs, newest first. A limit <= 0 means
// DefaultListLimit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.query(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// BySeed returns every run generated from seed, newest first.
func (s *Store) BySeed(ctx context.Context, seed int64) ([]Run, error) {
	return s.query(ctx, `SELECT `+runColumns+` FROM runs WHERE seed = ? ORDER BY created_at DESC, id DESC`, seed)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
