package model

import (
	"fmt"
	"strconv"

	"github.com/balzaczyy/goluke/core/util"
	"golang.org/x/exp/slices"
)

// index/SegmentCommitInfo.java

// Embeds a [read-only] SegmentInfo and adds per-commit fields.
type SegmentCommitInfo struct {
	// The SegmentInfo that we wrap.
	Info *SegmentInfo
	// How many deleted docs in the segment:
	delCount int
	// Generation number of the live docs file (-1 if there are no deletes yet)
	delGen int64

	fieldInfosGen int64

	docValuesGen int64

	// Track the per-field DocValues update files
	dvUpdatesFiles map[int]map[string]bool

	// Track the fieldInfos update files
	fieldInfosFiles map[string]bool

	// Per-generation update files of segments written before 4.9
	genUpdatesFiles map[int64]map[string]bool

	liveDocsFile string

	sizeInBytes int64
}

func NewSegmentCommitInfo(info *SegmentInfo,
	delCount int, delGen, fieldInfosGen, docValuesGen int64) *SegmentCommitInfo {
	return &SegmentCommitInfo{
		Info:            info,
		delCount:        delCount,
		delGen:          delGen,
		fieldInfosGen:   fieldInfosGen,
		docValuesGen:    docValuesGen,
		dvUpdatesFiles:  make(map[int]map[string]bool),
		fieldInfosFiles: make(map[string]bool),
		genUpdatesFiles: make(map[int64]map[string]bool),
		sizeInBytes:     -1,
	}
}

// Returns true if there are any deletions for the segment at this
// commit.
func (si *SegmentCommitInfo) HasDeletions() bool {
	return si.delGen != -1
}

/* Returns generation number of the live docs file or -1 if there are no deletes yet. */
func (si *SegmentCommitInfo) DelGen() int64 {
	return si.delGen
}

/* Returns the number of deleted docs in the segment. */
func (si *SegmentCommitInfo) DelCount() int {
	return si.delCount
}

/* Returns the generation number of the field infos file or -1 if there are no field updates yet. */
func (si *SegmentCommitInfo) FieldInfosGen() int64 {
	return si.fieldInfosGen
}

/* Returns the generation number of the DocValues file or -1 if there are no doc-values updates yet. */
func (si *SegmentCommitInfo) DocValuesGen() int64 {
	return si.docValuesGen
}

func (si *SegmentCommitInfo) SetFieldInfosFiles(files map[string]bool) {
	si.fieldInfosFiles = files
}

func (si *SegmentCommitInfo) FieldInfosFiles() map[string]bool {
	return si.fieldInfosFiles
}

func (si *SegmentCommitInfo) SetDocValuesUpdatesFiles(files map[int]map[string]bool) {
	si.dvUpdatesFiles = files
}

func (si *SegmentCommitInfo) DocValuesUpdatesFiles() map[int]map[string]bool {
	return si.dvUpdatesFiles
}

func (si *SegmentCommitInfo) SetGenUpdatesFiles(files map[int64]map[string]bool) {
	si.genUpdatesFiles = files
}

/*
Returns the name of the live docs file for the given extension, or ""
if the segment has no deletions at this commit.
*/
func (si *SegmentCommitInfo) LiveDocsFileName(extension string) string {
	if si.delGen == -1 {
		return ""
	}
	return util.FileNameFromGeneration(si.Info.Name, extension, si.delGen)
}

// Records the live docs file found for this commit.
func (si *SegmentCommitInfo) SetLiveDocsFile(name string) {
	si.liveDocsFile = name
}

func (si *SegmentCommitInfo) LiveDocsFile() string {
	return si.liveDocsFile
}

/*
Returns total size in bytes of all files for this segment, or -1 if it
was not computed.
*/
func (si *SegmentCommitInfo) SizeInBytes() int64 {
	return si.sizeInBytes
}

func (si *SegmentCommitInfo) SetSizeInBytes(size int64) {
	si.sizeInBytes = size
}

/*
Returns all files in use by this segment: the wrapped info's files,
the live docs file and the field infos and doc values update files.
The result is sorted.
*/
func (si *SegmentCommitInfo) Files() []string {
	// Start from the wrapped info's files:
	files := make(map[string]bool)
	for name := range si.Info.Files() {
		files[name] = true
	}
	if si.liveDocsFile != "" {
		files[si.liveDocsFile] = true
	}
	for name := range si.fieldInfosFiles {
		files[name] = true
	}
	for _, updates := range si.dvUpdatesFiles {
		for name := range updates {
			files[name] = true
		}
	}
	for _, updates := range si.genUpdatesFiles {
		for name := range updates {
			files[name] = true
		}
	}

	ans := make([]string, 0, len(files))
	for s := range files {
		ans = append(ans, s)
	}
	slices.Sort(ans)
	return ans
}

func (si *SegmentCommitInfo) String() string {
	s := si.Info.StringOf(si.delCount)
	if si.delGen != -1 {
		s = fmt.Sprintf("%v:delGen=%v", s, si.delGen)
	}
	if si.fieldInfosGen != -1 {
		s = fmt.Sprintf("%v:fieldInfosGen=%v", s, si.fieldInfosGen)
	}
	if si.docValuesGen != -1 {
		s = s + ":dvGen=" + strconv.FormatInt(si.docValuesGen, 10)
	}
	return s
}
