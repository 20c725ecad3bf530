package commits

import (
	"bytes"

	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/util"
	"golang.org/x/exp/slices"
)

// Holder for a commit.
type Commit struct {
	Generation       int64
	IsDeleted        bool
	SegCount         int
	UserData         map[string]string
	SegmentsFileName string
}

func newCommit(cp *index.CommitPoint) *Commit {
	return &Commit{
		Generation:       cp.Generation(),
		IsDeleted:        cp.IsDeleted(),
		SegCount:         cp.SegmentCount(),
		UserData:         copyMap(cp.UserData()),
		SegmentsFileName: cp.SegmentsFileName(),
	}
}

func (c *Commit) clone() *Commit {
	ans := *c
	ans.UserData = copyMap(c.UserData)
	return &ans
}

// Renders the user data as "{k1=v1, k2=v2}", sorted by key.
func (c *Commit) UserDataString() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range sortedKeys(c.UserData) {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k)
		buf.WriteString("=")
		buf.WriteString(c.UserData[k])
	}
	buf.WriteString("}")
	return buf.String()
}

// Holder for an index file.
type File struct {
	FileName    string
	Size        int64
	DisplaySize string
}

func newFile(e index.FileEntry) *File {
	return &File{e.Name, e.Length, util.HumanReadableUnits(e.Length)}
}

// Holder for a segment.
type Segment struct {
	Name           string
	MaxDoc         int
	DelCount       int
	DelGen         int64
	CodecName      string
	StorageVersion string
	IsCompound     bool
	Size           int64
	DisplaySize    string
	Diagnostics    map[string]string
	Attributes     map[string]string
	// Files backing the segment at this commit, sorted.
	Files []string
}

func newSegment(sci *model.SegmentCommitInfo) *Segment {
	return &Segment{
		Name:           sci.Info.Name,
		MaxDoc:         sci.Info.DocCount(),
		DelCount:       sci.DelCount(),
		DelGen:         sci.DelGen(),
		CodecName:      sci.Info.CodecName(),
		StorageVersion: sci.Info.Version(),
		IsCompound:     sci.Info.IsCompoundFile(),
		Size:           sci.SizeInBytes(),
		DisplaySize:    util.HumanReadableUnits(sci.SizeInBytes()),
		Diagnostics:    copyMap(sci.Info.Diagnostics()),
		Attributes:     copyMap(sci.Info.Attributes()),
		Files:          sci.Files(),
	}
}

func (s *Segment) clone() *Segment {
	ans := *s
	ans.Diagnostics = copyMap(s.Diagnostics)
	ans.Attributes = copyMap(s.Attributes)
	ans.Files = append([]string(nil), s.Files...)
	return &ans
}

// Describes the codec of a segment: its name, implementation and the
// implementation of each of the ten sub-formats.
type CodecDescriptor = spi.CodecDescriptor

/*
Renders a map as "key = value" lines sorted by key, the way segment
details are listed.
*/
func FormatEntries(m map[string]string) []string {
	lines := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		lines = append(lines, k+" = "+m[k])
	}
	return lines
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func copyMap(m map[string]string) map[string]string {
	ans := make(map[string]string, len(m))
	for k, v := range m {
		ans[k] = v
	}
	return ans
}
