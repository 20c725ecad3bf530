package spi

import (
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
)

// codecs/SegmentInfoReader.java

/*
Specifies an API for classes that can read SegmentInfo information.
Read() decodes and validates the whole .si file of the named segment.
id is the segment id recorded in the commit, or nil for segments
written before ids existed.
*/
type SegmentInfoReader interface {
	Read(dir store.Directory, segment string, id []byte, ctx store.IOContext) (si *model.SegmentInfo, err error)
}

type SegmentInfoReaderFunc func(dir store.Directory, segment string, id []byte, ctx store.IOContext) (*model.SegmentInfo, error)

func (f SegmentInfoReaderFunc) Read(dir store.Directory, segment string, id []byte, ctx store.IOContext) (*model.SegmentInfo, error) {
	return f(dir, segment, id, ctx)
}

// keyed by the codec name written in the .si header
var allSegmentInfoReaders = make(map[string]SegmentInfoReader)

func RegisterSegmentInfoReader(headerName string, r SegmentInfoReader) {
	log.Debugf("Found segment info format: %v", headerName)
	allSegmentInfoReaders[headerName] = r
}

func SegmentInfoReaderFor(headerName string) (SegmentInfoReader, bool) {
	r, ok := allSegmentInfoReaders[headerName]
	return r, ok
}

func AvailableSegmentInfoFormats() []string {
	ans := make([]string, 0, len(allSegmentInfoReaders))
	for name := range allSegmentInfoReaders {
		ans = append(ans, name)
	}
	return ans
}
