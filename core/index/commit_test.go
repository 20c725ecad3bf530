package index

import (
	"errors"
	"fmt"
	"testing"

	"github.com/balzaczyy/goluke/core/store"
	ti "github.com/balzaczyy/goluke/test_framework/index"
	ts "github.com/balzaczyy/goluke/test_framework/store"
)

func newThreeCommitIndex(t *testing.T) *store.RAMDirectory {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	seg0 := &ti.SegmentSpec{Name: "_0", MaxDoc: 10, Files: map[string]int{"_0.cfs": 100}}
	seg1 := &ti.SegmentSpec{Name: "_1", MaxDoc: 5, Files: map[string]int{"_1.cfs": 50}}
	for _, c := range []*ti.CommitSpec{
		{Generation: 1},
		{Generation: 2, Segments: []*ti.SegmentSpec{seg0}, UserData: map[string]string{"phase": "two"}},
		{Generation: 3, Segments: []*ti.SegmentSpec{seg0, seg1}},
	} {
		if err := b.Commit(c); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListCommits(t *testing.T) {
	dir := newThreeCommitIndex(t)
	commits, warnings, err := ListCommits(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 0, len(warnings))
	assertEquals(t, 3, len(commits))
	for i, c := range commits {
		assertEquals(t, int64(i+1), c.Generation())
		assertEquals(t, i, c.SegmentCount())
		// keep only last commit
		assertEquals(t, i < 2, c.IsDeleted())
	}
	assertEquals(t, "segments_2", commits[1].SegmentsFileName())
	assertEquals(t, "two", commits[1].UserData()["phase"])
	assertEquals(t, 0, len(commits[0].UserData()))

	names, err := commits[2].FileNames()
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "[_0.cfs _0.si _1.cfs _1.si segments_3]", fmt.Sprint(names))
}

func TestListCommitsNoDeletionPolicy(t *testing.T) {
	dir := newThreeCommitIndex(t)
	policy, err := DeletionPolicyByName(POLICY_NONE)
	if err != nil {
		t.Fatal(err)
	}
	commits, _, err := ListCommits(dir, policy)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range commits {
		assertEquals(t, false, c.IsDeleted())
	}

	if _, err = DeletionPolicyByName("keep-everything"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestListCommitsSkipsCorruptCommit(t *testing.T) {
	mdw := ts.NewMockDirectoryWrapper(newThreeCommitIndex(t))
	if err := mdw.CorruptFile("segments_2", 20); err != nil {
		t.Fatal(err)
	}
	commits, warnings, err := ListCommits(mdw, KEEP_ONLY_LAST_COMMIT_DELETION_POLICY)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 2, len(commits))
	assertEquals(t, int64(1), commits[0].Generation())
	assertEquals(t, int64(3), commits[1].Generation())
	assertEquals(t, 1, len(warnings))
	var cce *CorruptCommitError
	if !errors.As(warnings[0], &cce) {
		t.Fatalf("expected CorruptCommitError, got %v", warnings[0])
	}
	assertEquals(t, int64(2), cce.Generation)
	assertEquals(t, "segments_2", cce.FileName)
	assertEquals(t, 0, mdw.OpenFileCount())
}

func TestListCommitsUnreadable(t *testing.T) {
	var due *DirectoryUnreadableError

	_, _, err := ListCommits(nil, nil)
	assertEquals(t, true, errors.As(err, &due))

	// no segments file
	dir := store.NewRAMDirectory()
	dir.SetFileContent("_0.si", []byte{1})
	dir.SetFileContent("segments.gen", []byte{1})
	_, _, err = ListCommits(dir, nil)
	assertEquals(t, true, errors.As(err, &due))

	mdw := ts.NewMockDirectoryWrapper(newThreeCommitIndex(t))
	listErr := errors.New("permission denied")
	mdw.SetListAllError(listErr)
	_, _, err = ListCommits(mdw, nil)
	assertEquals(t, true, errors.As(err, &due))
	assertEquals(t, true, errors.Is(err, listErr))

	closed := newThreeCommitIndex(t)
	closed.Close()
	_, _, err = ListCommits(closed, nil)
	assertEquals(t, true, errors.Is(err, store.ErrAlreadyClosed))
}

func TestListCommitsReflectsDisk(t *testing.T) {
	dir := newThreeCommitIndex(t)
	commits, _, _ := ListCommits(dir, nil)
	assertEquals(t, 3, len(commits))

	if err := dir.DeleteFile("segments_1"); err != nil {
		t.Fatal(err)
	}
	commits, _, err := ListCommits(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 2, len(commits))
	assertEquals(t, int64(2), commits[0].Generation())
}
