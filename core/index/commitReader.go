package index

import (
	"fmt"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
	"golang.org/x/exp/slices"
)

// A file referenced by a commit and its length.
type FileEntry struct {
	Name   string
	Length int64
}

/*
Everything one commit references: its decoded segments in commit-file
order, its files sorted by name, and the segments that had to be left
out.
*/
type CommitContents struct {
	Generation int64
	UserData   map[string]string
	Segments   []*model.SegmentCommitInfo
	Files      []FileEntry
	Warnings   []error
}

/*
Returns the segments of the commit with the given generation, in the
order the segments file lists them. A segment whose .si file cannot be
decoded is left out and reported as a *SegmentCorruptError; one whose
counts are inconsistent is left out and reported as an
*InvariantViolationError.
*/
func ReadSegments(directory store.Directory, generation int64) (segments []*model.SegmentCommitInfo, warnings []error, err error) {
	c, err := ReadCommit(directory, generation)
	if err != nil {
		return nil, nil, err
	}
	return c.Segments, c.Warnings, nil
}

// Returns the files of the commit with the given generation,
// deduplicated and sorted by name.
func ReadFiles(directory store.Directory, generation int64) ([]FileEntry, error) {
	c, err := ReadCommit(directory, generation)
	if err != nil {
		return nil, err
	}
	return c.Files, nil
}

/*
Decodes the commit with the given generation and every segment it
references.

The commit's files are its segments file plus, per segment, the .si
file, the files the .si lists, the live docs file and the update files.
A live docs file is only counted when the directory holds it.

Returns *CommitVanishedError if the segments file or one of the files
it references is gone, and *CorruptCommitError if the segments file
cannot be decoded.
*/
func ReadCommit(directory store.Directory, generation int64) (*CommitContents, error) {
	segmentsFileName := util.FileNameFromGeneration(util.SEGMENTS, "", generation)
	sis, err := ReadSegmentInfos(directory, segmentsFileName)
	if isNotExist(err) {
		return nil, &CommitVanishedError{generation, segmentsFileName, err}
	} else if err != nil {
		return nil, &CorruptCommitError{generation, segmentsFileName, err}
	}

	ans := &CommitContents{Generation: generation, UserData: sis.UserData}
	files := map[string]bool{segmentsFileName: true}
	var segmentFiles [][]string
	for _, ref := range sis.Segments {
		siFileName := util.SegmentFileName(ref.Name, "", "si")
		sci, err := readSegmentCommitInfo(directory, ref)
		if isNotExist(err) {
			return nil, &CommitVanishedError{generation, siFileName, err}
		} else if err != nil {
			log.Warningf("Skipping segment %v of commit %v: %v", ref.Name, generation, err)
			ans.Warnings = append(ans.Warnings, &SegmentCorruptError{generation, ref.Name, err})
			if directory.FileExists(siFileName) {
				files[siFileName] = true
			}
			continue
		}
		names := sci.Files()
		for _, name := range names {
			files[name] = true
		}
		if msg := checkCounts(sci); msg != "" {
			log.Warningf("Skipping segment %v of commit %v: %v", ref.Name, generation, msg)
			ans.Warnings = append(ans.Warnings, &InvariantViolationError{generation, ref.Name, msg})
			continue
		}
		ans.Segments = append(ans.Segments, sci)
		segmentFiles = append(segmentFiles, names)
	}

	lengths := make(map[string]int64, len(files))
	for name := range files {
		length, err := directory.FileLength(name)
		if isNotExist(err) {
			return nil, &CommitVanishedError{generation, name, err}
		} else if err != nil {
			return nil, err
		}
		lengths[name] = length
		ans.Files = append(ans.Files, FileEntry{name, length})
	}
	slices.SortFunc(ans.Files, func(a, b FileEntry) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	for i, sci := range ans.Segments {
		var size int64
		for _, name := range segmentFiles[i] {
			size += lengths[name]
		}
		sci.SetSizeInBytes(size)
	}
	return ans, nil
}

func readSegmentCommitInfo(directory store.Directory, ref *SegmentRef) (*model.SegmentCommitInfo, error) {
	si, err := readSegmentInfo(directory, ref)
	if err != nil {
		return nil, err
	}
	si.SetCodecName(ref.CodecName)
	if err = si.AddFile(util.SegmentFileName(ref.Name, "", "si")); err != nil {
		return nil, err
	}

	sci := model.NewSegmentCommitInfo(si, ref.DelCount, ref.DelGen, ref.FieldInfosGen, ref.DocValuesGen)
	sci.SetFieldInfosFiles(ref.FieldInfosFiles)
	sci.SetDocValuesUpdatesFiles(ref.DocValuesUpdatesFiles)
	sci.SetGenUpdatesFiles(ref.GenUpdatesFiles)
	if sci.HasDeletions() {
		for _, ext := range liveDocsExtensions(ref.CodecName) {
			if name := sci.LiveDocsFileName(ext); directory.FileExists(name) {
				sci.SetLiveDocsFile(name)
				break
			}
		}
	}
	return sci, nil
}

/*
Decodes the .si file of a segment with the reader registered for the
codec name found in its header.
*/
func readSegmentInfo(directory store.Directory, ref *SegmentRef) (*model.SegmentInfo, error) {
	fileName := util.SegmentFileName(ref.Name, "", "si")
	input, err := directory.OpenInput(fileName, store.IO_CONTEXT_READONCE)
	if err != nil {
		return nil, err
	}
	headerName, err := codec.ReadHeaderName(input)
	util.CloseWhileSuppressingError(input)
	if err != nil {
		return nil, err
	}
	reader, ok := spi.SegmentInfoReaderFor(headerName)
	if !ok {
		return nil, codec.NewCorruptIndexError(fileName,
			fmt.Sprintf("unknown segment info format %q (available: %v)", headerName, spi.AvailableSegmentInfoFormats()))
	}
	return reader.Read(directory, ref.Name, ref.ID, store.IO_CONTEXT_READ)
}

// Live docs extensions to probe: the codec's own, or every known one
// when the codec is not registered.
func liveDocsExtensions(codecName string) []string {
	if desc, err := spi.Describe(codecName); err == nil {
		return []string{desc.LiveDocsExtension}
	}
	var exts []string
	for _, name := range spi.AvailableCodecs() {
		desc, _ := spi.Describe(name)
		if !slices.Contains(exts, desc.LiveDocsExtension) {
			exts = append(exts, desc.LiveDocsExtension)
		}
	}
	return exts
}

func checkCounts(sci *model.SegmentCommitInfo) string {
	maxDoc := sci.Info.DocCount()
	switch {
	case maxDoc < 0:
		return fmt.Sprintf("invalid maxDoc: %v", maxDoc)
	case sci.DelCount() < 0:
		return fmt.Sprintf("invalid deletion count: %v", sci.DelCount())
	case sci.DelCount() > maxDoc:
		return fmt.Sprintf("invalid deletion count: %v > maxDoc %v", sci.DelCount(), maxDoc)
	}
	return ""
}
