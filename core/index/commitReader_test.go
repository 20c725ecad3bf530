package index

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/balzaczyy/goluke/core/store"
	ti "github.com/balzaczyy/goluke/test_framework/index"
	ts "github.com/balzaczyy/goluke/test_framework/store"
	tu "github.com/balzaczyy/goluke/test_framework/util"
	"github.com/op/go-logging"
)

func newTwoCommitIndex(t *testing.T) (*store.RAMDirectory, *ti.IndexBuilder) {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	if err := b.Commit(&ti.CommitSpec{Generation: 1}); err != nil {
		t.Fatal(err)
	}
	err := b.Commit(&ti.CommitSpec{Generation: 2, Segments: []*ti.SegmentSpec{{
		Name: "_0", MaxDoc: 100, DelCount: 5, DelGen: 3, Codec: "Lucene99", Compound: true,
		Files:       map[string]int{"_0.cfs": 1000},
		Diagnostics: map[string]string{"source": "flush"},
		Attributes:  map[string]string{"mode": "BEST_SPEED"},
	}}})
	if err != nil {
		t.Fatal(err)
	}
	return dir, b
}

func TestReadSegments(t *testing.T) {
	dir, _ := newTwoCommitIndex(t)

	segments, warnings, err := ReadSegments(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 0, len(segments))
	assertEquals(t, 0, len(warnings))

	segments, warnings, err = ReadSegments(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 0, len(warnings))
	assertEquals(t, 1, len(segments))
	sci := segments[0]
	assertEquals(t, "_0", sci.Info.Name)
	assertEquals(t, 100, sci.Info.DocCount())
	assertEquals(t, 5, sci.DelCount())
	assertEquals(t, int64(3), sci.DelGen())
	assertEquals(t, "Lucene99", sci.Info.CodecName())
	assertEquals(t, "9.12.0", sci.Info.Version())
	assertEquals(t, true, sci.Info.IsCompoundFile())
	assertEquals(t, "flush", sci.Info.Diagnostics()["source"])
	assertEquals(t, "BEST_SPEED", sci.Info.Attributes()["mode"])
	// the live docs file _0_3.liv is not on disk
	assertEquals(t, "", sci.LiveDocsFile())

	files, err := ReadFiles(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 3, len(files))
	assertEquals(t, FileEntry{"_0.cfs", 1000}, files[0])
	assertEquals(t, "_0.si", files[1].Name)
	assertEquals(t, "segments_2", files[2].Name)

	var total int64
	for _, f := range files[:2] {
		total += f.Length
	}
	assertEquals(t, total, sci.SizeInBytes())

	files, err = ReadFiles(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 1, len(files))
	assertEquals(t, "segments_1", files[0].Name)
}

func TestSegmentFilesAreCommitFiles(t *testing.T) {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 4, Format: ti.FORMAT_49, Segments: []*ti.SegmentSpec{
		{Name: "_a", MaxDoc: 3, Files: map[string]int{"_a.fdt": 10, "_a.fdx": 11}},
		{Name: "_b", MaxDoc: 8, DelCount: 1, DelGen: 2, WriteLiveDocs: true,
			Files:                 map[string]int{"_b.cfs": 12, "_b.cfe": 13},
			FieldInfosGen:         1,
			FieldInfosFiles:       []string{"_b_1.fnm"},
			DocValuesUpdatesFiles: map[int][]string{3: {"_b_1_Lucene410_0.dvd", "_b_1_Lucene410_0.dvm"}},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}

	c, err := ReadCommit(dir, 4)
	if err != nil {
		t.Fatal(err)
	}
	commitFiles := make(map[string]bool)
	for _, f := range c.Files {
		commitFiles[f.Name] = true
	}
	assertEquals(t, 2, len(c.Segments))
	for _, sci := range c.Segments {
		for _, name := range sci.Files() {
			if !commitFiles[name] {
				t.Errorf("segment %v file %v is not a commit file", sci.Info.Name, name)
			}
		}
	}
	assertEquals(t, "_b_2.liv", c.Segments[1].LiveDocsFile())
	assertEquals(t, true, commitFiles["_b_2.liv"])
	assertEquals(t, true, commitFiles["_b_1.fnm"])
	assertEquals(t, true, commitFiles["_b_1_Lucene410_0.dvd"])
	assertEquals(t, 11, len(c.Files))
}

func TestReadSegmentsKeepsCommitOrder(t *testing.T) {
	order := tu.Shuffled(tu.Random(), []string{"_z", "_b", "_m", "_0", "_a1"})
	var specs []*ti.SegmentSpec
	for i, name := range order {
		specs = append(specs, &ti.SegmentSpec{Name: name, MaxDoc: i + 1})
	}
	dir := store.NewRAMDirectory()
	if err := ti.NewIndexBuilder(dir).Commit(&ti.CommitSpec{Generation: 1, Segments: specs}); err != nil {
		t.Fatal(err)
	}
	segments, _, err := ReadSegments(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, len(order), len(segments))
	for i, name := range order {
		assertEquals(t, name, segments[i].Info.Name)
	}
}

func TestReadSegmentsCorruptSegment(t *testing.T) {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 3, Segments: []*ti.SegmentSpec{
		{Name: "_0", MaxDoc: 10}, {Name: "_1", MaxDoc: 20}, {Name: "_2", MaxDoc: 30},
	}})
	if err != nil {
		t.Fatal(err)
	}
	mdw := ts.NewMockDirectoryWrapper(dir)
	if err = mdw.CorruptFile("_1.si", -3); err != nil {
		t.Fatal(err)
	}

	segments, warnings, err := ReadSegments(mdw, 3)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 2, len(segments))
	assertEquals(t, "_0", segments[0].Info.Name)
	assertEquals(t, "_2", segments[1].Info.Name)
	assertEquals(t, 1, len(warnings))
	var sce *SegmentCorruptError
	if !errors.As(warnings[0], &sce) {
		t.Fatalf("expected SegmentCorruptError, got %v", warnings[0])
	}
	assertEquals(t, "_1", sce.Segment)
	assertEquals(t, int64(3), sce.Generation)

	// the .si of the corrupt segment is still referenced by the commit
	files, err := ReadFiles(mdw, 3)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "[_0.si _1.si _2.si segments_3]", fmt.Sprint(names(files)))
	assertEquals(t, 0, mdw.OpenFileCount())
}

func TestReadSegmentsUnknownSegmentInfoFormat(t *testing.T) {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 1, Segments: []*ti.SegmentSpec{{Name: "_0", MaxDoc: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := dir.FileContent("_0.si")
	// rename the header codec: "Lucene50SegmentInfo" -> "Lucene50SegmentInfX"
	data[4+1+len("Lucene50SegmentInf")] = 'X'
	dir.SetFileContent("_0.si", data)

	segments, warnings, err := ReadSegments(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 0, len(segments))
	assertEquals(t, 1, len(warnings))
}

func TestReadSegmentsInvariantViolation(t *testing.T) {
	backend := logging.InitForTesting(logging.WARNING)
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 1, Segments: []*ti.SegmentSpec{
		{Name: "_0", MaxDoc: 10, DelCount: 11, DelGen: 1},
		{Name: "_1", MaxDoc: 10, DelCount: -1, DelGen: 1},
		{Name: "_2", MaxDoc: 10, DelCount: 10, DelGen: 1},
	}})
	if err != nil {
		t.Fatal(err)
	}
	segments, warnings, err := ReadSegments(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 1, len(segments))
	assertEquals(t, "_2", segments[0].Info.Name)
	assertEquals(t, 2, len(warnings))
	for i, w := range warnings {
		var ive *InvariantViolationError
		if !errors.As(w, &ive) {
			t.Fatalf("expected InvariantViolationError, got %v", w)
		}
		assertEquals(t, fmt.Sprintf("_%v", i), ive.Segment)
	}

	var skipped []string
	for n := backend.Head(); n != nil; n = n.Next() {
		if msg := n.Record.Message(); n.Record.Module == "index" && strings.HasPrefix(msg, "Skipping segment") {
			skipped = append(skipped, msg)
		}
	}
	assertEquals(t, 2, len(skipped))
	assertEquals(t, true, strings.HasPrefix(skipped[0], "Skipping segment _0 of commit 1: "))
	assertEquals(t, false, strings.Contains(skipped[1], "%v"))
}

func TestReadCommitVanished(t *testing.T) {
	dir, _ := newTwoCommitIndex(t)
	mdw := ts.NewMockDirectoryWrapper(dir)

	mdw.Vanish("_0.cfs")
	_, err := ReadFiles(mdw, 2)
	var cve *CommitVanishedError
	if !errors.As(err, &cve) {
		t.Fatalf("expected CommitVanishedError, got %v", err)
	}
	assertEquals(t, "_0.cfs", cve.FileName)

	mdw.Vanish("segments_2")
	_, _, err = ReadSegments(mdw, 2)
	if !errors.As(err, &cve) {
		t.Fatalf("expected CommitVanishedError, got %v", err)
	}
	assertEquals(t, int64(2), cve.Generation)
	assertEquals(t, "segments_2", cve.FileName)
}

func TestReadCommitMissingSegmentInfo(t *testing.T) {
	dir, _ := newTwoCommitIndex(t)
	mdw := ts.NewMockDirectoryWrapper(dir)

	mdw.Vanish("_0.si")
	c, err := ReadCommit(mdw, 2)
	var cve *CommitVanishedError
	if !errors.As(err, &cve) {
		t.Fatalf("expected CommitVanishedError, got %v (%v)", err, c)
	}
	assertEquals(t, int64(2), cve.Generation)
	assertEquals(t, "_0.si", cve.FileName)

	var sce *SegmentCorruptError
	assertEquals(t, false, errors.As(err, &sce))
}

func TestReadLucene4Commit(t *testing.T) {
	dir := store.NewRAMDirectory()
	b := ti.NewIndexBuilder(dir)
	err := b.Commit(&ti.CommitSpec{Generation: 5, Format: ti.FORMAT_48, Segments: []*ti.SegmentSpec{{
		Name: "_3", MaxDoc: 7, DelCount: 1, DelGen: 1, Codec: "Lucene410", WriteLiveDocs: true,
		Files: map[string]int{"_3.cfs": 70, "_3.cfe": 7},
	}}})
	if err != nil {
		t.Fatal(err)
	}
	segments, warnings, err := ReadSegments(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, 0, len(warnings))
	assertEquals(t, 1, len(segments))
	assertEquals(t, "4.10.4", segments[0].Info.Version())
	assertEquals(t, "Lucene46SegmentInfo", segments[0].Info.InfoCodecName())
	assertEquals(t, "_3_1.del", segments[0].LiveDocsFile())
	assertEquals(t, int64(70+7+8)+fileLength(t, dir, "_3.si"), segments[0].SizeInBytes())
}

func TestReadCommitConcurrently(t *testing.T) {
	dir, _ := newTwoCommitIndex(t)
	var wg sync.WaitGroup
	n := tu.AtLeast(8)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := ReadCommit(dir, 2)
			if err == nil && len(c.Segments) != 1 {
				err = fmt.Errorf("expected 1 segment, got %v", len(c.Segments))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func names(files []FileEntry) []string {
	ans := make([]string, len(files))
	for i, f := range files {
		ans[i] = f.Name
	}
	return ans
}

func fileLength(t *testing.T, dir store.Directory, name string) int64 {
	n, err := dir.FileLength(name)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
