package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/balzaczyy/goluke/luke/models/commits"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS export_runs (
	id          TEXT PRIMARY KEY,
	index_path  TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS commits (
	run_id      TEXT NOT NULL REFERENCES export_runs(id),
	generation  INTEGER NOT NULL,
	deleted     INTEGER NOT NULL,
	seg_count   INTEGER NOT NULL,
	user_data   TEXT NOT NULL,
	PRIMARY KEY (run_id, generation)
);
CREATE TABLE IF NOT EXISTS files (
	run_id      TEXT NOT NULL REFERENCES export_runs(id),
	generation  INTEGER NOT NULL,
	name        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	PRIMARY KEY (run_id, generation, name)
);
CREATE TABLE IF NOT EXISTS segments (
	run_id      TEXT NOT NULL REFERENCES export_runs(id),
	generation  INTEGER NOT NULL,
	seq         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	max_doc     INTEGER NOT NULL,
	del_count   INTEGER NOT NULL,
	del_gen     INTEGER NOT NULL,
	codec       TEXT NOT NULL,
	version     TEXT NOT NULL,
	compound    INTEGER NOT NULL,
	size        INTEGER NOT NULL,
	PRIMARY KEY (run_id, generation, name)
);
CREATE TABLE IF NOT EXISTS segment_metadata (
	run_id      TEXT NOT NULL REFERENCES export_runs(id),
	generation  INTEGER NOT NULL,
	segment     TEXT NOT NULL,
	kind        TEXT NOT NULL,
	key         TEXT NOT NULL,
	value       TEXT NOT NULL,
	PRIMARY KEY (run_id, generation, segment, kind, key)
);
`

// Kinds of rows in segment_metadata.
const (
	KIND_DIAGNOSTIC = "diagnostic"
	KIND_ATTRIBUTE  = "attribute"
	KIND_FORMAT     = "format"
)

/*
Appends a snapshot of m to the SQLite database at dbPath, creating
the database and its schema when missing. Several runs can share a
database; the rows of a run are keyed by its ULID, which is returned.
*/
func WriteSQLite(ctx context.Context, m commits.Commits, dbPath string) (runID string, err error) {
	if err = os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(on)")
	if err != nil {
		return "", fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx, schema); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	snap := TakeSnapshot(m)
	if err = insertSnapshot(ctx, db, snap); err != nil {
		return "", err
	}
	log.Infof("Exported %v commits of %v to %v (run %v)", len(snap.Commits), snap.IndexPath, dbPath, snap.RunID)
	return snap.RunID, nil
}

func insertSnapshot(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO export_runs (id, index_path, created_at) VALUES (?, ?, ?)`,
		snap.RunID, snap.IndexPath, snap.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, c := range snap.Commits {
		userData := (&commits.Commit{UserData: c.UserData}).UserDataString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO commits (run_id, generation, deleted, seg_count, user_data) VALUES (?, ?, ?, ?, ?)`,
			snap.RunID, c.Generation, c.IsDeleted, c.SegCount, userData)
		if err != nil {
			return fmt.Errorf("insert commit %v: %w", c.Generation, err)
		}
		for _, f := range c.Files {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO files (run_id, generation, name, size) VALUES (?, ?, ?, ?)`,
				snap.RunID, c.Generation, f.Name, f.Size)
			if err != nil {
				return fmt.Errorf("insert file %v: %w", f.Name, err)
			}
		}
		for i, s := range c.Segments {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO segments (run_id, generation, seq, name, max_doc, del_count, del_gen, codec, version, compound, size)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				snap.RunID, c.Generation, i, s.Name, s.MaxDoc, s.DelCount, s.DelGen,
				s.Codec, s.StorageVersion, s.IsCompound, s.Size)
			if err != nil {
				return fmt.Errorf("insert segment %v: %w", s.Name, err)
			}
			for kind, entries := range map[string]map[string]string{
				KIND_DIAGNOSTIC: s.Diagnostics,
				KIND_ATTRIBUTE:  s.Attributes,
				KIND_FORMAT:     s.Formats,
			} {
				for k, v := range entries {
					_, err = tx.ExecContext(ctx,
						`INSERT INTO segment_metadata (run_id, generation, segment, kind, key, value) VALUES (?, ?, ?, ?, ?, ?)`,
						snap.RunID, c.Generation, s.Name, kind, k, v)
					if err != nil {
						return fmt.Errorf("insert %v %v of %v: %w", kind, k, s.Name, err)
					}
				}
			}
		}
	}
	return tx.Commit()
}
