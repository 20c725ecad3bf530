package app

import (
	"errors"
	"testing"

	"github.com/balzaczyy/goluke/core/index"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/luke/models/commits"
	ti "github.com/balzaczyy/goluke/test_framework/index"
)

type indexHandle struct {
	dir store.Directory
}

func (h *indexHandle) Directory() store.Directory { return h.dir }

func newIndex(t *testing.T, generations ...int64) *store.RAMDirectory {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	for _, gen := range generations {
		err := b.Commit(&ti.CommitSpec{Generation: gen, Segments: []*ti.SegmentSpec{{Name: "_0", MaxDoc: 3}}})
		if err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestOpenReplacesAndCloseDiscards(t *testing.T) {
	h := NewCommitsHolder()
	var seen []commits.Commits
	h.Subscribe(func(m commits.Commits) { seen = append(seen, m) })
	assertEquals(t, nil, h.Current())

	if err := h.OnDirectoryOpened(newIndex(t, 1), "a"); err != nil {
		t.Fatal(err)
	}
	first := h.Current()
	assertEquals(t, "a", first.IndexPath())
	assertEquals(t, 1, len(first.ListCommits()))

	if err := h.OnIndexOpened(&indexHandle{newIndex(t, 1, 2)}, "b"); err != nil {
		t.Fatal(err)
	}
	second := h.Current()
	assertEquals(t, "b", second.IndexPath())
	assertEquals(t, 2, len(second.ListCommits()))
	assertEquals(t, 1, len(first.ListCommits()))

	h.OnIndexClosed()
	assertEquals(t, nil, h.Current())

	assertEquals(t, 3, len(seen))
	assertEquals(t, first, seen[0])
	assertEquals(t, second, seen[1])
	assertEquals(t, nil, seen[2])
}

func TestIndexWithoutDirectory(t *testing.T) {
	h := NewCommitsHolder()
	if err := h.OnDirectoryOpened(newIndex(t, 1), "a"); err != nil {
		t.Fatal(err)
	}
	current := h.Current()
	calls := 0
	h.Subscribe(func(commits.Commits) { calls++ })
	if err := h.OnIndexOpened(nil, "multi"); err != nil {
		t.Fatal(err)
	}
	assertEquals(t, current, h.Current())
	assertEquals(t, 0, calls)
}

func TestOpenUnreadableDirectory(t *testing.T) {
	h := NewCommitsHolder(commits.WithDeletionPolicy(index.NO_DELETION_POLICY))
	if err := h.OnDirectoryOpened(newIndex(t, 1), "a"); err != nil {
		t.Fatal(err)
	}
	err := h.OnDirectoryOpened(store.NewRAMDirectory(), "empty")
	var due *index.DirectoryUnreadableError
	assertEquals(t, true, errors.As(err, &due))
	assertEquals(t, nil, h.Current())

	h.OnDirectoryClosed()
	assertEquals(t, nil, h.Current())
}

func TestSubscriberMayReadHolder(t *testing.T) {
	h := NewCommitsHolder()
	var gens []int64
	h.Subscribe(func(m commits.Commits) {
		if m != nil && h.Current() == m {
			for _, c := range m.ListCommits() {
				gens = append(gens, c.Generation)
			}
		}
	})
	if err := h.OnDirectoryOpened(newIndex(t, 4, 5), "a"); err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 2, len(gens))
	assertEquals(t, int64(4), gens[0])
	assertEquals(t, int64(5), gens[1])
}

func TestSubscribeFromListener(t *testing.T) {
	h := NewCommitsHolder()
	var outer, inner int
	h.Subscribe(func(commits.Commits) {
		outer++
		if outer == 1 {
			h.Subscribe(func(commits.Commits) { inner++ })
		}
	})
	if err := h.OnDirectoryOpened(newIndex(t, 1), "a"); err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 1, outer)
	assertEquals(t, 0, inner)

	h.OnDirectoryClosed()
	assertEquals(t, 2, outer)
	assertEquals(t, 1, inner)
}

func assertEquals(t *testing.T, a, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Expected '%v', but '%v'", a, b)
	}
}
