package index

import (
	"fmt"
	"strconv"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
)

// index/SegmentInfos.java

/*
A collection of segment references with a unique generation, decoded
from one segments_N file.

Files:

	segments_N: Header, Version, NameCounter, SegCount, <SegName, [SegID],
	SegCodec, DelGen, DeletionCount, [FieldInfosGen], [DocValuesGen],
	[UpdatesFiles]>^SegCount, CommitUserData, Footer

Data types:

	Header --> CodecHeader, or IndexHeader since 5.0
	Version, DelGen, FieldInfosGen, DocValuesGen --> int64
	NameCounter, SegCount, DeletionCount --> int32
	SegID --> byte^16, since 5.0
	SegName, SegCodec --> string
	CommitUserData --> map<string,string>
	Footer --> CodecFooter since 4.8, a bare int64 checksum before

The .si files of the referenced segments are not read here.
*/
type SegmentInfos struct {
	Format     int32
	Version    int64
	Counter    int
	Generation int64
	UserData   map[string]string
	Segments   []*SegmentRef
}

// One per-segment record of a segments_N file.
type SegmentRef struct {
	Name          string
	ID            []byte
	CodecName     string
	DelGen        int64
	DelCount      int
	FieldInfosGen int64
	DocValuesGen  int64
	// Field infos update files, since 4.9
	FieldInfosFiles map[string]bool
	// Doc values update files per field number, since 4.9
	DocValuesUpdatesFiles map[int]map[string]bool
	// Update files per generation, 4.6 to 4.8
	GenUpdatesFiles map[int64]map[string]bool
}

const (
	// The file format version for the segments_N codec header, up to 4.5.
	VERSION_40 = 0
	// The file format version for the segments_N codec header, since 4.6+.
	VERSION_46 = 1
	// The file format version for the segments_N codec header, since 4.8+
	VERSION_48 = 2
	// The file format version for the segments_N codec header, since 4.9+
	VERSION_49 = 3
	// The file format version for the segments_N codec header, since 5.0+
	VERSION_50 = 4

	VERSION_CURRENT = VERSION_50

	SEGMENTS_CODEC_NAME = "segments"
)

/*
Get the generation of the most recent commit to the list of index
files (N in the segments_N file), or -1 if there is none.
*/
func LastCommitGeneration(files []string) int64 {
	max := int64(-1)
	for _, file := range files {
		if util.IsSegmentsFileName(file) {
			gen, _ := util.GenerationFromSegmentsFileName(file)
			if gen > max {
				max = gen
			}
		}
	}
	return max
}

// Get the segments_N filename in use by this segment infos.
func (sis *SegmentInfos) SegmentsFileName() string {
	return util.FileNameFromGeneration(util.SEGMENTS, "", sis.Generation)
}

/*
Read a particular segments file. This does not read the .si files of
the segments it references.
*/
func ReadSegmentInfos(directory store.Directory, segmentFileName string) (sis *SegmentInfos, err error) {
	log.Debugf("Reading segment info from %v...", segmentFileName)
	generation, err := util.GenerationFromSegmentsFileName(segmentFileName)
	if err != nil {
		return nil, err
	}

	input, err := directory.OpenChecksumInput(segmentFileName, store.IO_CONTEXT_READ)
	if err != nil {
		return nil, err
	}
	success := false
	defer func() {
		if !success {
			util.CloseWhileSuppressingError(input)
		} else {
			err = input.Close()
		}
	}()

	sis = &SegmentInfos{Generation: generation}
	if sis.Format, err = codec.CheckHeader(input, SEGMENTS_CODEC_NAME, VERSION_40, VERSION_CURRENT); err != nil {
		return nil, err
	}
	if sis.Format >= VERSION_50 {
		if _, err = codec.CheckIndexHeaderID(input, nil); err != nil {
			return nil, err
		}
		if err = codec.CheckIndexHeaderSuffix(input, strconv.FormatInt(generation, 36)); err != nil {
			return nil, err
		}
	}
	if sis.Version, err = input.ReadLong(); err != nil {
		return nil, err
	}
	if sis.Counter, err = asInt(input.ReadInt()); err != nil {
		return nil, err
	}
	numSegments, err := asInt(input.ReadInt())
	if err != nil {
		return nil, err
	}
	if numSegments < 0 {
		return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid segment count: %v", numSegments))
	}
	for seg := 0; seg < numSegments; seg++ {
		ref, err := readSegmentRef(input, sis.Format)
		if err != nil {
			return nil, err
		}
		sis.Segments = append(sis.Segments, ref)
	}
	if sis.UserData, err = input.ReadStringStringMap(); err != nil {
		return nil, err
	}

	if sis.Format >= VERSION_48 {
		_, err = codec.CheckFooter(input)
	} else {
		err = codec.CheckLegacyChecksum(input)
	}
	if err != nil {
		return nil, err
	}

	success = true
	return sis, nil
}

func readSegmentRef(input store.IndexInput, format int32) (ref *SegmentRef, err error) {
	ref = &SegmentRef{
		FieldInfosGen:         -1,
		DocValuesGen:          -1,
		FieldInfosFiles:       make(map[string]bool),
		DocValuesUpdatesFiles: make(map[int]map[string]bool),
		GenUpdatesFiles:       make(map[int64]map[string]bool),
	}
	if ref.Name, err = input.ReadString(); err != nil {
		return nil, err
	}
	if !util.CODEC_FILE_PATTERN.MatchString(ref.Name + ".si") {
		return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid segment name: %q", ref.Name))
	}
	if format >= VERSION_50 {
		ref.ID = make([]byte, codec.ID_LENGTH)
		if err = input.ReadBytes(ref.ID); err != nil {
			return nil, err
		}
	}
	if ref.CodecName, err = input.ReadString(); err != nil {
		return nil, err
	}
	if ref.DelGen, err = input.ReadLong(); err != nil {
		return nil, err
	}
	if ref.DelCount, err = asInt(input.ReadInt()); err != nil {
		return nil, err
	}
	if format >= VERSION_46 {
		if ref.FieldInfosGen, err = input.ReadLong(); err != nil {
			return nil, err
		}
	}
	if format >= VERSION_49 {
		if ref.DocValuesGen, err = input.ReadLong(); err != nil {
			return nil, err
		}
	} else {
		ref.DocValuesGen = ref.FieldInfosGen
	}

	switch {
	case format >= VERSION_49:
		if ref.FieldInfosFiles, err = input.ReadStringSet(); err != nil {
			return nil, err
		}
		numDVFields, err := asInt(input.ReadInt())
		if err != nil {
			return nil, err
		}
		if numDVFields < 0 {
			return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid doc values field count: %v", numDVFields))
		}
		for i := 0; i < numDVFields; i++ {
			fieldNumber, err := asInt(input.ReadInt())
			if err != nil {
				return nil, err
			}
			if ref.DocValuesUpdatesFiles[fieldNumber], err = input.ReadStringSet(); err != nil {
				return nil, err
			}
		}
	case format >= VERSION_46:
		numGensUpdatesFiles, err := asInt(input.ReadInt())
		if err != nil {
			return nil, err
		}
		if numGensUpdatesFiles < 0 {
			return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid updates generation count: %v", numGensUpdatesFiles))
		}
		for i := 0; i < numGensUpdatesFiles; i++ {
			gen, err := input.ReadLong()
			if err != nil {
				return nil, err
			}
			if ref.GenUpdatesFiles[gen], err = input.ReadStringSet(); err != nil {
				return nil, err
			}
		}
	}
	return ref, nil
}

func asInt(n int32, err error) (int, error) {
	return int(n), err
}
