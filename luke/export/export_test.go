package export

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/luke/models/commits"
	ti "github.com/balzaczyy/goluke/test_framework/index"
	"github.com/oklog/ulid/v2"
)

func newCommits(t *testing.T) commits.Commits {
	t.Helper()
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 1, UserData: map[string]string{"author": "bob"}})
	if err != nil {
		t.Fatal(err)
	}
	err = b.Commit(&ti.CommitSpec{Generation: 2, Segments: []*ti.SegmentSpec{{
		Name: "_0", MaxDoc: 100, DelCount: 5, DelGen: 3, Compound: true,
		Files:       map[string]int{"_0.cfs": 2048},
		Diagnostics: map[string]string{"source": "flush"},
		Attributes:  map[string]string{"mode": "BEST_SPEED"},
	}}})
	if err != nil {
		t.Fatal(err)
	}
	m, err := commits.NewCommits(dir, "/idx")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTakeSnapshot(t *testing.T) {
	snap := TakeSnapshot(newCommits(t))
	_, err := ulid.Parse(snap.RunID)
	assertEquals(t, nil, err)
	assertEquals(t, "/idx", snap.IndexPath)
	assertEquals(t, 2, len(snap.Commits))
	assertEquals(t, "bob", snap.Commits[0].UserData["author"])
	assertEquals(t, 0, len(snap.Commits[0].Segments))

	c := snap.Commits[1]
	assertEquals(t, 3, len(c.Files))
	assertEquals(t, 1, len(c.Segments))
	s := c.Segments[0]
	assertEquals(t, "Lucene99", s.Codec)
	assertEquals(t, 10, len(s.Formats))
	assertEquals(t, "Lucene99SegmentInfoFormat", s.Formats["segment-info"])
}

func TestWriteJSON(t *testing.T) {
	m := newCommits(t)
	var buf bytes.Buffer
	written, err := WriteJSON(&buf, m, 4)
	if err != nil {
		t.Fatal(err)
	}
	read, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, written.RunID, read.RunID)
	assertEquals(t, 2, len(read.Commits))
	assertEquals(t, int64(2), read.Commits[1].Generation)
	assertEquals(t, 95, read.Commits[1].Segments[0].MaxDoc-read.Commits[1].Segments[0].DelCount)
	assertEquals(t, "flush", read.Commits[1].Segments[0].Diagnostics["source"])

	if _, err = WriteJSON(&buf, m, 0); err == nil {
		t.Error("expected error for compression level 0")
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.json.zst")
	runID, err := WriteJSONFile(path, newCommits(t), 2)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 26, len(runID))
}

func TestWriteSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sub", "commits.db")
	m := newCommits(t)
	first, err := WriteSQLite(ctx, m, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	second, err := WriteSQLite(ctx, m, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, true, first != second)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	count := func(query string, args ...interface{}) int {
		t.Helper()
		var n int
		if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			t.Fatalf("%v: %v", query, err)
		}
		return n
	}
	assertEquals(t, 2, count(`SELECT COUNT(*) FROM export_runs`))
	assertEquals(t, 2, count(`SELECT COUNT(*) FROM commits WHERE run_id = ?`, first))
	assertEquals(t, 4, count(`SELECT COUNT(*) FROM files WHERE run_id = ?`, first))
	assertEquals(t, 100, count(`SELECT max_doc FROM segments WHERE run_id = ? AND name = '_0'`, second))
	assertEquals(t, 10, count(`SELECT COUNT(*) FROM segment_metadata WHERE run_id = ? AND kind = ?`, first, KIND_FORMAT))
	assertEquals(t, 1, count(`SELECT COUNT(*) FROM segment_metadata WHERE run_id = ? AND kind = ?`, first, KIND_DIAGNOSTIC))

	var userData string
	err = db.QueryRowContext(ctx, `SELECT user_data FROM commits WHERE run_id = ? AND generation = 1`, first).Scan(&userData)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "{author=bob}", userData)
}

func assertEquals(t *testing.T, a, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Expected '%v', but '%v'", a, b)
	}
}
