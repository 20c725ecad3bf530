package util

import (
	"testing"
)

func TestFileNameFromGeneration(t *testing.T) {
	assertEquals(t, "", FileNameFromGeneration(SEGMENTS, "", -1))
	assertEquals(t, "segments", FileNameFromGeneration(SEGMENTS, "", 0))
	assertEquals(t, "segments_2", FileNameFromGeneration(SEGMENTS, "", 2))
	assertEquals(t, "segments_a", FileNameFromGeneration(SEGMENTS, "", 10))
	assertEquals(t, "_0_3.liv", FileNameFromGeneration("_0", "liv", 3))
	assertEquals(t, "_1_z.del", FileNameFromGeneration("_1", "del", 35))
}

func TestGenerationFromSegmentsFileName(t *testing.T) {
	gen, err := GenerationFromSegmentsFileName("segments")
	assertEquals(t, nil, err)
	assertEquals(t, int64(0), gen)

	gen, err = GenerationFromSegmentsFileName("segments_a")
	assertEquals(t, nil, err)
	assertEquals(t, int64(10), gen)

	_, err = GenerationFromSegmentsFileName("_0.si")
	if err == nil {
		t.Error("Expected error for non-segments file")
	}
}

func TestIsSegmentsFileName(t *testing.T) {
	assertEquals(t, true, IsSegmentsFileName("segments"))
	assertEquals(t, true, IsSegmentsFileName("segments_1"))
	assertEquals(t, false, IsSegmentsFileName("segments.gen"))
	assertEquals(t, false, IsSegmentsFileName("pending_segments_1"))
	assertEquals(t, false, IsSegmentsFileName("segments_"))
	assertEquals(t, false, IsSegmentsFileName("_0.si"))
}

func TestParseSegmentName(t *testing.T) {
	assertEquals(t, "_0", ParseSegmentName("_0.fnm"))
	assertEquals(t, "_0", ParseSegmentName("_0_Lucene41_0.doc"))
	assertEquals(t, "_a", ParseSegmentName("_a_3.liv"))
}

func TestCodecFilePattern(t *testing.T) {
	assertEquals(t, true, CODEC_FILE_PATTERN.MatchString("_0.cfs"))
	assertEquals(t, true, CODEC_FILE_PATTERN.MatchString("_0_1.fnm"))
	assertEquals(t, false, CODEC_FILE_PATTERN.MatchString("segments_1"))
	assertEquals(t, false, CODEC_FILE_PATTERN.MatchString("write.lock"))
}
