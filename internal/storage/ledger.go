// Package storage keeps a ledger of finished runs in an in-memory SQLite
// database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk: the ledger lives exactly as long
// as the process.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Ledger records finished runs.
type Ledger struct {
	db   *sql.DB
	name string
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        uuid.UUID
	Player    string
	Score     int
	Ticks     uint64
	Seed      int64
	Night     bool // Whether the run reached the night threshold
	CreatedAt time.Time
}

// OpenLedger opens a named in-memory database and creates its schema.
// Ledgers opened with the same name in one process share their data; an
// empty name gets a private database.
func OpenLedger(name string) (*Ledger, error) {
	if name == "" {
		name = "ledger-" + uuid.NewString()
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open ledger: %w", err)
	}
	// The memory database is dropped when its last connection closes,
	// so keep exactly one open for the ledger's lifetime.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to ledger: %w", err)
	}

	l := &Ledger{db: db, name: name}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return l, nil
}

// migrate creates the schema if it doesn't exist.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			night INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC, created_at ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, score DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Name returns the ledger's database name.
func (l *Ledger) Name() string {
	return l.name
}

// Close releases the database. The ledger's data is gone afterwards.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Record stores a finished run. A missing ID or timestamp is filled in.
// Returns the record as stored.
func (l *Ledger) Record(ctx context.Context, r RunRecord) (RunRecord, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, player, score, ticks, seed, night, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Player, r.Score, int64(r.Ticks), r.Seed, r.Night, r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot record run: %w", err)
	}
	return r, nil
}

// Top returns the best runs, highest score first. Ties go to the earlier run.
func (l *Ledger) Top(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, player, score, ticks, seed, night, created_at
		 FROM runs
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var (
		r         RunRecord
		id        string
		ticks     int64
		createdAt int64
	)
	if err := rows.Scan(&id, &r.Player, &r.Score, &ticks, &r.Seed, &r.Night, &createdAt); err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: bad run id %q: %w", id, err)
	}
	r.ID = parsed
	r.Ticks = uint64(ticks)
	r.CreatedAt = time.Unix(0, createdAt)
	return r, nil
}

// Best returns the player's highest score, 0 if they have no runs.
func (l *Ledger) Best(ctx context.Context, player string) (int, error) {
	var score sql.NullInt64
	err := l.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM runs WHERE player = ?",
		player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Count returns the number of recorded runs.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}
