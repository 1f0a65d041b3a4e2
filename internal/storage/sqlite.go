package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	preset TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	seed INTEGER NOT NULL,
	roots INTEGER NOT NULL,
	descendants INTEGER NOT NULL,
	unconverged INTEGER NOT NULL,
	violations INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS particles (
	run_id TEXT NOT NULL REFERENCES runs(id),
	idx INTEGER NOT NULL,
	root INTEGER NOT NULL,
	parent INTEGER NOT NULL,
	depth INTEGER NOT NULL,
	type TEXT NOT NULL,
	channel TEXT NOT NULL,
	e REAL NOT NULL,
	px REAL NOT NULL,
	py REAL NOT NULL,
	pz REAL NOT NULL,
	mass REAL NOT NULL,
	charge TEXT NOT NULL,
	PRIMARY KEY (run_id, idx)
);
CREATE TABLE IF NOT EXISTS channels (
	run_id TEXT NOT NULL REFERENCES runs(id),
	channel TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (run_id, channel)
);`

// OpenSQLite opens path and creates the export schema.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: sqlite path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// ExportSQLite writes one run into the database at path in a single
// transaction. Re-exporting a run replaces it.
func ExportSQLite(ctx context.Context, path string, meta *RunMetadata, rows []Row) error {
	db, err := OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM particles WHERE run_id = ?",
		"DELETE FROM channels WHERE run_id = ?",
		"DELETE FROM runs WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, meta.ID); err != nil {
			return fmt.Errorf("clear run: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, preset, timestamp, seed, roots, descendants, unconverged, violations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Preset, meta.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), meta.Seed,
		meta.Roots, meta.Descendants, meta.Unconverged, meta.Violations,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO particles (run_id, idx, root, parent, depth, type, channel, e, px, py, pz, mass, charge)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare particles: %w", err)
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, meta.ID, r.Index, r.Root, r.Parent, r.Depth, r.Type,
			r.Channel, r.E, r.Px, r.Py, r.Pz, r.Mass, r.Charge); err != nil {
			return fmt.Errorf("insert particle %d: %w", r.Index, err)
		}
	}

	for ch, n := range meta.Channels {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO channels (run_id, channel, count) VALUES (?, ?, ?)", meta.ID, ch, n); err != nil {
			return fmt.Errorf("insert channel: %w", err)
		}
	}
	return tx.Commit()
}
