package lucene46

import (
	"fmt"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
)

// lucene46/Lucene46SegmentInfoFormat.java

/*
Lucene 4.6 Segment info format.

Files:

	.si: Header, SegVersion, SegSize, IsCompoundFile, Diagnostics, Files, Footer

Data types:

	Header --> CodecHeader
	SegSize --> int32
	SegVersion --> string
	Files --> set<string>
	Diagnostics --> map<string,string>
	IsCompoundFile --> byte
	Footer --> CodecFooter (since version 1)

IsCompoundFile records whether the segment is written as a compound
file or not. If this is -1, the segment is not a compound file. If it
is 1, the segment is a compound file.
*/
const (
	// File extension used to store SegmentInfo.
	SI_EXTENSION        = "si"
	SI_CODEC_NAME       = "Lucene46SegmentInfo"
	SI_VERSION_START    = 0
	SI_VERSION_CHECKSUM = 1
	SI_VERSION_CURRENT  = SI_VERSION_CHECKSUM
)

const (
	NO  = -1
	YES = 1
)

func init() {
	spi.RegisterSegmentInfoReader(SI_CODEC_NAME, spi.SegmentInfoReaderFunc(ReadSegmentInfo))
}

// lucene46/Lucene46SegmentInfoReader.java

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

	codecVersion, err := codec.CheckHeader(input, SI_CODEC_NAME, SI_VERSION_START, SI_VERSION_CURRENT)
	if err != nil {
		return nil, err
	}
	version, err := input.ReadString()
	if err != nil {
		return nil, err
	}
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

	if codecVersion >= SI_VERSION_CHECKSUM {
		_, err = codec.CheckFooter(input)
	} else {
		err = codec.CheckEOF(input)
	}
	if err != nil {
		return nil, err
	}

	si = model.NewSegmentInfo(version, segment, int(docCount), isCompoundFile, nil, diagnostics, nil)
	si.SetInfoCodecName(SI_CODEC_NAME)
	if err = si.SetFiles(files); err != nil {
		return nil, codec.NewCorruptIndexError(input, err.Error())
	}

	success = true
	return si, nil
}

// lucene46/Lucene46SegmentInfoWriter.java

// Writes the .si content of si to out, then closes out.
func WriteSegmentInfo(out store.IndexOutput, si *model.SegmentInfo) (err error) {
	var success = false
	defer func() {
		if !success {
			util.CloseWhileSuppressingError(out)
		} else {
			err = out.Close()
		}
	}()

	if err = codec.WriteHeader(out, SI_CODEC_NAME, SI_VERSION_CURRENT); err == nil {
		// write the Lucene version that created this segment, since 3.1
		if err = out.WriteString(si.Version()); err == nil {
			if err = out.WriteInt(int32(si.DocCount())); err == nil {
				flag := int8(NO)
				if si.IsCompoundFile() {
					flag = YES
				}
				if err = out.WriteByte(byte(flag)); err == nil {
					if err = out.WriteStringStringMap(si.Diagnostics()); err == nil {
						if err = out.WriteStringSet(si.Files()); err == nil {
							err = codec.WriteFooter(out)
						}
					}
				}
			}
		}
	}
	if err != nil {
		return err
	}
	success = true
	return nil
}
