package index

import (
	"fmt"
	"strconv"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/codec/lucene46"
	"github.com/balzaczyy/goluke/core/codec/lucene50"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
)

// segments_N format versions
const (
	FORMAT_40 = 0
	FORMAT_46 = 1
	FORMAT_48 = 2
	FORMAT_49 = 3
	FORMAT_50 = 4
)

const DEFAULT_CODEC = "Lucene99"

// Describes one segment to write.
type SegmentSpec struct {
	Name     string
	MaxDoc   int
	DelCount int
	DelGen   int64 // 0 means no deletions
	Codec    string
	Version  string
	Compound bool

	Diagnostics map[string]string
	Attributes  map[string]string
	// Data files created next to the .si, with their length.
	Files map[string]int
	// Create the live docs file for DelGen.
	WriteLiveDocs bool

	FieldInfosGen         int64
	FieldInfosFiles       []string
	DocValuesUpdatesFiles map[int][]string
}

// Describes one commit to write.
type CommitSpec struct {
	Generation int64
	Format     int // FORMAT_50 if zero and Legacy is false
	Legacy     bool
	Segments   []*SegmentSpec
	UserData   map[string]string
}

/*
Writes commits into a RAMDirectory the way a writer would: the data
files and .si of every segment, then the segments_N file. Segments
shared by several commits are written once.
*/
type IndexBuilder struct {
	Dir     *store.RAMDirectory
	written map[string]bool
	version int64
}

func NewIndexBuilder(dir *store.RAMDirectory) *IndexBuilder {
	return &IndexBuilder{Dir: dir, written: make(map[string]bool)}
}

// Deterministic 16-byte id for a segment name.
func SegmentID(name string) []byte {
	id := make([]byte, codec.ID_LENGTH)
	copy(id, "seg"+name)
	return id
}

func isLucene4(codecName string) bool {
	switch codecName {
	case "Lucene46", "Lucene49", "Lucene410":
		return true
	}
	return false
}

func (b *IndexBuilder) Commit(c *CommitSpec) error {
	format := c.Format
	if format == 0 && !c.Legacy {
		format = FORMAT_50
	}
	for _, seg := range c.Segments {
		if seg.Codec == "" {
			seg.Codec = DEFAULT_CODEC
		}
		if !b.written[seg.Name] {
			if err := b.writeSegment(seg); err != nil {
				return err
			}
			b.written[seg.Name] = true
		}
	}
	b.version++
	return b.writeSegmentsFile(c, format)
}

func (b *IndexBuilder) writeFile(name string, size int) error {
	out, err := b.Dir.CreateOutput(name, store.IO_CONTEXT_DEFAULT)
	if err != nil {
		return err
	}
	if err = out.WriteBytes(make([]byte, size)); err != nil {
		util.CloseWhileSuppressingError(out)
		return err
	}
	return out.Close()
}

func (b *IndexBuilder) writeSegment(seg *SegmentSpec) error {
	files := make(map[string]bool)
	for name, size := range seg.Files {
		if err := b.writeFile(name, size); err != nil {
			return err
		}
		files[name] = true
	}
	for _, name := range seg.FieldInfosFiles {
		if err := b.writeFile(name, 10); err != nil {
			return err
		}
	}
	for _, names := range seg.DocValuesUpdatesFiles {
		for _, name := range names {
			if err := b.writeFile(name, 10); err != nil {
				return err
			}
		}
	}

	lucene4 := isLucene4(seg.Codec)
	ext := lucene50.LIVE_DOCS_EXTENSION
	if lucene4 {
		ext = lucene46.DELETES_EXTENSION
	}
	if seg.WriteLiveDocs && seg.DelGen > 0 {
		if err := b.writeFile(util.FileNameFromGeneration(seg.Name, ext, seg.DelGen), 8); err != nil {
			return err
		}
	}

	siFileName := util.SegmentFileName(seg.Name, "", "si")
	files[siFileName] = true
	version := seg.Version
	var id []byte
	if !lucene4 {
		id = SegmentID(seg.Name)
		if version == "" {
			version = "9.12.0"
		}
	} else if version == "" {
		version = "4.10.4"
	}
	si := model.NewSegmentInfo(version, seg.Name, seg.MaxDoc, seg.Compound, id, seg.Diagnostics, seg.Attributes)
	if err := si.SetFiles(files); err != nil {
		return err
	}

	out, err := b.Dir.CreateOutput(siFileName, store.IO_CONTEXT_DEFAULT)
	if err != nil {
		return err
	}
	if lucene4 {
		return lucene46.WriteSegmentInfo(out, si)
	}
	return lucene50.WriteSegmentInfo(out, si)
}

func (b *IndexBuilder) writeSegmentsFile(c *CommitSpec, format int) (err error) {
	fileName := util.FileNameFromGeneration(util.SEGMENTS, "", c.Generation)
	out, err := b.Dir.CreateOutput(fileName, store.IO_CONTEXT_DEFAULT)
	if err != nil {
		return err
	}
	success := false
	defer func() {
		if !success {
			util.CloseWhileSuppressingError(out)
		} else {
			err = out.Close()
		}
	}()

	if format >= FORMAT_50 {
		err = codec.WriteIndexHeader(out, "segments", format,
			SegmentID(fmt.Sprintf("commit%v", c.Generation)), strconv.FormatInt(c.Generation, 36))
	} else {
		err = codec.WriteHeader(out, "segments", format)
	}
	if err != nil {
		return err
	}
	if err = out.WriteLong(b.version); err != nil {
		return err
	}
	if err = out.WriteInt(int32(len(c.Segments))); err != nil { // counter
		return err
	}
	if err = out.WriteInt(int32(len(c.Segments))); err != nil {
		return err
	}
	for _, seg := range c.Segments {
		if err = writeSegmentRef(out, seg, format); err != nil {
			return err
		}
	}
	if err = out.WriteStringStringMap(c.UserData); err != nil {
		return err
	}
	if format >= FORMAT_48 {
		err = codec.WriteFooter(out)
	} else {
		err = out.WriteLong(out.Checksum())
	}
	if err != nil {
		return err
	}
	success = true
	return nil
}

func writeSegmentRef(out store.IndexOutput, seg *SegmentSpec, format int) (err error) {
	delGen := seg.DelGen
	if delGen == 0 {
		delGen = -1
	}
	fieldInfosGen := seg.FieldInfosGen
	if fieldInfosGen == 0 {
		fieldInfosGen = -1
	}
	if err = out.WriteString(seg.Name); err != nil {
		return err
	}
	if format >= FORMAT_50 {
		if err = out.WriteBytes(SegmentID(seg.Name)); err != nil {
			return err
		}
	}
	if err = out.WriteString(seg.Codec); err != nil {
		return err
	}
	if err = out.WriteLong(delGen); err != nil {
		return err
	}
	if err = out.WriteInt(int32(seg.DelCount)); err != nil {
		return err
	}
	if format >= FORMAT_46 {
		if err = out.WriteLong(fieldInfosGen); err != nil {
			return err
		}
	}
	if format >= FORMAT_49 {
		if err = out.WriteLong(fieldInfosGen); err != nil { // dvGen
			return err
		}
		if err = out.WriteStringSet(toSet(seg.FieldInfosFiles)); err != nil {
			return err
		}
		if err = out.WriteInt(int32(len(seg.DocValuesUpdatesFiles))); err != nil {
			return err
		}
		for field, names := range seg.DocValuesUpdatesFiles {
			if err = out.WriteInt(int32(field)); err != nil {
				return err
			}
			if err = out.WriteStringSet(toSet(names)); err != nil {
				return err
			}
		}
	} else if format >= FORMAT_46 {
		var all []string
		all = append(all, seg.FieldInfosFiles...)
		for _, names := range seg.DocValuesUpdatesFiles {
			all = append(all, names...)
		}
		if len(all) == 0 {
			return out.WriteInt(0)
		}
		if err = out.WriteInt(1); err != nil {
			return err
		}
		if err = out.WriteLong(fieldInfosGen); err != nil {
			return err
		}
		return out.WriteStringSet(toSet(all))
	}
	return nil
}

func toSet(names []string) map[string]bool {
	ans := make(map[string]bool, len(names))
	for _, name := range names {
		ans[name] = true
	}
	return ans
}

// Removes the segments file of the given generation.
func (b *IndexBuilder) DropCommit(generation int64) error {
	return b.Dir.DeleteFile(util.FileNameFromGeneration(util.SEGMENTS, "", generation))
}
