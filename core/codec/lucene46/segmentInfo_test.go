package lucene46

import (
	"errors"
	"testing"

	"github.com/balzaczyy/goluke/core/codec"
	"github.com/balzaczyy/goluke/core/codec/spi"
	"github.com/balzaczyy/goluke/core/index/model"
	"github.com/balzaczyy/goluke/core/store"
)

func TestSegmentInfoRoundTrip(t *testing.T) {
	dir := store.NewRAMDirectory()
	si := model.NewSegmentInfo("4.10.4", "_9", 17, false, nil,
		map[string]string{"os": "Linux"}, nil)
	if err := si.SetFiles(map[string]bool{"_9.fdt": true, "_9.si": true}); err != nil {
		t.Fatal(err)
	}
	out, err := dir.CreateOutput("_9.si", store.IO_CONTEXT_DEFAULT)
	if err != nil {
		t.Fatal(err)
	}
	if err = WriteSegmentInfo(out, si); err != nil {
		t.Fatal(err)
	}

	si, err = ReadSegmentInfo(dir, "_9", nil, store.IO_CONTEXT_READ)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "4.10.4", si.Version())
	assertEquals(t, 17, si.DocCount())
	assertEquals(t, false, si.IsCompoundFile())
	assertEquals(t, "Linux", si.Diagnostics()["os"])
	assertEquals(t, 0, len(si.Attributes()))
	assertEquals(t, true, si.Files()["_9.fdt"])

	// flip a byte of the file set
	data, _ := dir.FileContent("_9.si")
	data[len(data)-20] ^= 0xff
	dir.SetFileContent("_9.si", data)
	_, err = ReadSegmentInfo(dir, "_9", nil, store.IO_CONTEXT_READ)
	var cie *codec.CorruptIndexError
	assertEquals(t, true, errors.As(err, &cie))
}

func TestLucene4Codecs(t *testing.T) {
	for _, name := range []string{"Lucene46", "Lucene49", "Lucene410"} {
		desc, err := spi.Describe(name)
		if err != nil {
			t.Fatal(err)
		}
		assertEquals(t, DELETES_EXTENSION, desc.LiveDocsExtension)
		assertEquals(t, spi.NO_FORMAT, desc.Component(spi.ROLE_POINTS))
		assertEquals(t, "Lucene46SegmentInfoFormat", desc.Component(spi.ROLE_SEGMENT_INFO))
	}
	desc, _ := spi.Describe("Lucene410")
	assertEquals(t, "lucene410.Lucene410Codec", desc.ClassName)
}

func assertEquals(t *testing.T, a, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Expected '%v', but '%v'", a, b)
	}
}
