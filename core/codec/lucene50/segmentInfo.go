package lucene50

import (
	"fmt"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
)

// lucene50/Lucene50SegmentInfoFormat.java

/*
Lucene 5.0 Segment info format.

Files:

	.si: Header, SegVersion, SegSize, IsCompoundFile, Diagnostics, Files, Attributes, Footer

Data types:

	Header --> IndexHeader
	SegVersion --> int32 major, int32 minor, int32 bugfix
	SegSize --> int32
	IsCompoundFile --> byte
	Diagnostics --> map<string,string>
	Files --> set<string>
	Attributes --> map<string,string>
	Footer --> CodecFooter

The index header carries the segment id, which must match the id the
commit recorded for the segment.
*/
const (
	SI_EXTENSION       = "si"
	SI_CODEC_NAME      = "Lucene50SegmentInfo"
	SI_VERSION_START   = 0
	SI_VERSION_CURRENT = SI_VERSION_START
)

const (
	NO  = -1
	YES = 1
)

func init() {
	spi.RegisterSegmentInfoReader(SI_CODEC_NAME, spi.SegmentInfoReaderFunc(ReadSegmentInfo))
}

func ReadSegmentInfo(dir store.Directory, segment string, id []byte, ctx store.IOContext) (si *model.SegmentInfo, err error) {
	fileName := util.SegmentFileName(segment, "", SI_EXTENSION)
	input, err := dir.OpenChecksumInput(fileName, ctx)
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

	if _, err = codec.CheckHeader(input, SI_CODEC_NAME, SI_VERSION_START, SI_VERSION_CURRENT); err != nil {
		return nil, err
	}
	if id, err = codec.CheckIndexHeaderID(input, id); err != nil {
		return nil, err
	}
	if err = codec.CheckIndexHeaderSuffix(input, ""); err != nil {
		return nil, err
	}

	var v [3]int32
	for i := range v {
		if v[i], err = input.ReadInt(); err != nil {
			return nil, err
		}
		if v[i] < 0 {
			return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid version component: %v", v[i]))
		}
	}
	version := fmt.Sprintf("%v.%v.%v", v[0], v[1], v[2])

	docCount, err := input.ReadInt()
	if err != nil {
		return nil, err
	}
	if docCount < 0 {
		return nil, codec.NewCorruptIndexError(input, fmt.Sprintf("invalid docCount: %v", docCount))
	}
	sicf, err := input.ReadByte()
	if err != nil {
		return nil, err
	}
	isCompoundFile := int8(sicf) == YES
	diagnostics, err := input.ReadStringStringMap()
	if err != nil {
		return nil, err
	}
	files, err := input.ReadStringSet()
	if err != nil {
		return nil, err
	}
	attributes, err := input.ReadStringStringMap()
	if err != nil {
		return nil, err
	}
	if _, err = codec.CheckFooter(input); err != nil {
		return nil, err
	}

	si = model.NewSegmentInfo(version, segment, int(docCount), isCompoundFile, id, diagnostics, attributes)
	si.SetInfoCodecName(SI_CODEC_NAME)
	if err = si.SetFiles(files); err != nil {
		return nil, codec.NewCorruptIndexError(input, err.Error())
	}

	success = true
	return si, nil
}

// Writes the .si content of si to out, then closes out. The version
// of si must be in "major.minor.bugfix" form.
func WriteSegmentInfo(out store.IndexOutput, si *model.SegmentInfo) (err error) {
	var major, minor, bugfix int32
	if _, err = fmt.Sscanf(si.Version(), "%d.%d.%d", &major, &minor, &bugfix); err != nil {
		util.CloseWhileSuppressingError(out)
		return fmt.Errorf("invalid segment version %q: %v", si.Version(), err)
	}

	var success = false
	defer func() {
		if !success {
			util.CloseWhileSuppressingError(out)
		} else {
			err = out.Close()
		}
	}()

	if err = codec.WriteIndexHeader(out, SI_CODEC_NAME, SI_VERSION_CURRENT, si.ID(), ""); err != nil {
		return err
	}
	for _, n := range []int32{major, minor, bugfix} {
		if err = out.WriteInt(n); err != nil {
			return err
		}
	}
	if err = out.WriteInt(int32(si.DocCount())); err != nil {
		return err
	}
	flag := int8(NO)
	if si.IsCompoundFile() {
		flag = YES
	}
	if err = out.WriteByte(byte(flag)); err != nil {
		return err
	}
	if err = out.WriteStringStringMap(si.Diagnostics()); err != nil {
		return err
	}
	if err = out.WriteStringSet(si.Files()); err != nil {
		return err
	}
	if err = out.WriteStringStringMap(si.Attributes()); err != nil {
		return err
	}
	if err = codec.WriteFooter(out); err != nil {
		return err
	}
	success = true
	return nil
}
