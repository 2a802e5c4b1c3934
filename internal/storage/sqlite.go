// Package storage provides SQLite-based persistence for render history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/fallscene/internal/scene"
)

// ErrRenderNotFound is returned when a render ID is not in the history.
var ErrRenderNotFound = errors.New("storage: render not found")

// Store manages the SQLite database connection for render history.
type Store struct {
	db *sql.DB
}

// RenderEntry is one planned render and the inputs that produced it.
type RenderEntry struct {
	ID          string
	Composition string
	Seed        int64
	SpawnCount  int
	TotalFrames int
	FPS         int
	Width       int
	Height      int
	FallSpeed   float64
	ItemScale   float64
	XRange      float64
	AssetKind   string
	AssetSource string
	Fingerprint string
	CreatedAt   time.Time
}

// Key returns the plan key the entry was planned with.
func (e RenderEntry) Key() scene.PlanKey {
	return scene.PlanKey{
		Seed:        scene.SeedFrom(e.Seed),
		SpawnCount:  e.SpawnCount,
		TotalFrames: e.TotalFrames,
		XRange:      e.XRange,
	}
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS renders (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			composition TEXT NOT NULL,
			seed INTEGER NOT NULL,
			spawn_count INTEGER NOT NULL,
			total_frames INTEGER NOT NULL,
			fps INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			fall_speed REAL NOT NULL,
			item_scale REAL NOT NULL,
			x_range REAL NOT NULL,
			asset_kind TEXT NOT NULL,
			asset_source TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_renders_composition ON renders(composition);
		CREATE INDEX IF NOT EXISTS idx_renders_fingerprint ON renders(fingerprint);

		CREATE TABLE IF NOT EXISTS plan_records (
			render_id TEXT NOT NULL REFERENCES renders(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			spawn_frame INTEGER NOT NULL,
			x0 REAL NOT NULL,
			rotation_speed REAL NOT NULL,
			drift REAL NOT NULL,
			PRIMARY KEY (render_id, position)
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

// SaveRender records a simulator's inputs, fingerprint and full spawn plan.
// Returns the stored entry with its generated ID.
func (s *Store) SaveRender(composition string, sim *scene.Simulator) (*RenderEntry, error) {
	cfg := sim.Config()
	video := sim.Video()
	plan := sim.Plan()

	e := RenderEntry{
		ID:          uuid.NewString(),
		Composition: composition,
		Seed:        cfg.Seed,
		SpawnCount:  cfg.SpawnCount,
		TotalFrames: video.DurationInFrames,
		FPS:         video.FPS,
		Width:       video.Width,
		Height:      video.Height,
		FallSpeed:   cfg.FallSpeed,
		ItemScale:   cfg.ItemScale,
		XRange:      sim.Geometry().XRange,
		AssetKind:   cfg.Asset.Kind.String(),
		AssetSource: cfg.Asset.Source,
		Fingerprint: scene.Fingerprint(plan),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO renders
		 (id, composition, seed, spawn_count, total_frames, fps, width, height,
		  fall_speed, item_scale, x_range, asset_kind, asset_source, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Composition, e.Seed, e.SpawnCount, e.TotalFrames, e.FPS, e.Width, e.Height,
		e.FallSpeed, e.ItemScale, e.XRange, e.AssetKind, e.AssetSource, e.Fingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot save render: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO plan_records (render_id, position, spawn_frame, x0, rotation_speed, drift)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot prepare plan insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range plan.Records {
		if _, err := stmt.Exec(e.ID, i, r.SpawnFrame, r.X0, r.RotationSpeed, r.Drift); err != nil {
			return nil, fmt.Errorf("storage: cannot save plan record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit render: %w", err)
	}

	// Read back for the database timestamp
	return s.Render(e.ID)
}

const renderColumns = `id, composition, seed, spawn_count, total_frames, fps, width, height,
		        fall_speed, item_scale, x_range, asset_kind, asset_source, fingerprint, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRender(row rowScanner) (*RenderEntry, error) {
	var e RenderEntry
	var createdAt any
	if err := row.Scan(
		&e.ID,
		&e.Composition,
		&e.Seed,
		&e.SpawnCount,
		&e.TotalFrames,
		&e.FPS,
		&e.Width,
		&e.Height,
		&e.FallSpeed,
		&e.ItemScale,
		&e.XRange,
		&e.AssetKind,
		&e.AssetSource,
		&e.Fingerprint,
		&createdAt,
	); err != nil {
		return nil, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return &e, nil
}

// Render retrieves a render by its ID.
func (s *Store) Render(id string) (*RenderEntry, error) {
	row := s.db.QueryRow(`SELECT `+renderColumns+` FROM renders WHERE id = ?`, id)
	e, err := scanRender(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRenderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query render: %w", err)
	}
	return e, nil
}

// RecentRenders retrieves the most recent renders, newest first.
// An empty composition matches all compositions.
func (s *Store) RecentRenders(composition string, limit int) ([]RenderEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+renderColumns+`
		 FROM renders
		 WHERE ? = '' OR composition = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		composition, composition, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query renders: %w", err)
	}
	defer rows.Close()

	var entries []RenderEntry
	for rows.Next() {
		e, err := scanRender(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// StoredPlan rebuilds the plan saved with a render, in its original order.
func (s *Store) StoredPlan(id string) (scene.Plan, error) {
	e, err := s.Render(id)
	if err != nil {
		return scene.Plan{}, err
	}

	rows, err := s.db.Query(
		`SELECT spawn_frame, x0, rotation_speed, drift
		 FROM plan_records
		 WHERE render_id = ?
		 ORDER BY position`,
		id,
	)
	if err != nil {
		return scene.Plan{}, fmt.Errorf("storage: cannot query plan records: %w", err)
	}
	defer rows.Close()

	plan := scene.Plan{Key: e.Key(), Records: []scene.SpawnRecord{}}
	for rows.Next() {
		var r scene.SpawnRecord
		if err := rows.Scan(&r.SpawnFrame, &r.X0, &r.RotationSpeed, &r.Drift); err != nil {
			return scene.Plan{}, fmt.Errorf("storage: cannot scan plan record: %w", err)
		}
		plan.Records = append(plan.Records, r)
	}

	if err := rows.Err(); err != nil {
		return scene.Plan{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return plan, nil
}

// DeleteRender removes a render and its plan records.
func (s *Store) DeleteRender(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM plan_records WHERE render_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete plan records: %w", err)
	}
	res, err := tx.Exec("DELETE FROM renders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete render: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRenderNotFound, id)
	}
	return tx.Commit()
}

// ClearRenders deletes the whole render history.
func (s *Store) ClearRenders() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM plan_records"); err != nil {
		return fmt.Errorf("storage: cannot clear plan records: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM renders"); err != nil {
		return fmt.Errorf("storage: cannot clear renders: %w", err)
	}
	return tx.Commit()
}

// CompositionStats contains aggregated history for a composition.
type CompositionStats struct {
	Composition  string
	Renders      int
	Fingerprints int // Distinct plans
	LastRendered time.Time
}

// Stats retrieves aggregated history per composition, keyed by composition ID.
func (s *Store) Stats() (map[string]*CompositionStats, error) {
	rows, err := s.db.Query(
		`SELECT composition, COUNT(*), COUNT(DISTINCT fingerprint), MAX(created_at)
		 FROM renders
		 GROUP BY composition`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CompositionStats)
	for rows.Next() {
		var cs CompositionStats
		var last any
		if err := rows.Scan(&cs.Composition, &cs.Renders, &cs.Fingerprints, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		switch v := last.(type) {
		case time.Time:
			cs.LastRendered = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				cs.LastRendered = parsed
			}
		}

		stats[cs.Composition] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
