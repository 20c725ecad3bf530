package util

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// index/IndexFileNames.java

const (
	// Name of the index segment file
	SEGMENTS = "segments"
	// Name of the generation reference file name
	SEGMENTS_GEN = "segments.gen"
	// Name of pending index segment file
	PENDING_SEGMENTS = "pending_segments"
	// Extension of compound file
	COMPOUND_FILE_EXTENSION = "cfs"
	// Extension of compound file entries
	COMPOUND_FILE_ENTRIES_EXTENSION = "cfe"
)

/*
Computes the full file name from base, extension and generation. If
the generation is -1, the file name is empty. If it's 0, the file name
is <base>.<ext>. If it's > 0, the file name is <base>_<gen>.<ext>,
with the generation written in base 36.
*/
func FileNameFromGeneration(base, ext string, gen int64) string {
	switch {
	case gen == -1:
		return ""
	case gen == 0:
		return SegmentFileName(base, "", ext)
	default:
		var buffer bytes.Buffer
		fmt.Fprintf(&buffer, "%v_%v", base, strconv.FormatInt(gen, 36))
		if len(ext) > 0 {
			buffer.WriteString(".")
			buffer.WriteString(ext)
		}
		return buffer.String()
	}
}

func SegmentFileName(name, suffix, ext string) string {
	if len(ext) > 0 || len(suffix) > 0 {
		var buffer bytes.Buffer
		buffer.WriteString(name)
		if len(suffix) > 0 {
			buffer.WriteString("_")
			buffer.WriteString(suffix)
		}
		if len(ext) > 0 {
			buffer.WriteString(".")
			buffer.WriteString(ext)
		}
		return buffer.String()
	}
	return name
}

func indexOfSegmentName(filename string) int {
	// If it is a .del file, there's an '_' after the first character
	if idx := strings.Index(filename[1:], "_"); idx >= 0 {
		return idx + 1
	}
	// If it's not, strip everything that's before the '.'
	return strings.Index(filename, ".")
}

// Returns the segment name ("_0") that a per-segment file name
// belongs to.
func ParseSegmentName(filename string) string {
	if filename == "" {
		return filename
	}
	if idx := indexOfSegmentName(filename); idx != -1 {
		return filename[0:idx]
	}
	return filename
}

/*
Returns the generation of a segments file name: 0 for "segments", N
for "segments_N" (base 36).
*/
func GenerationFromSegmentsFileName(fileName string) (int64, error) {
	switch {
	case fileName == SEGMENTS:
		return 0, nil
	case strings.HasPrefix(fileName, SEGMENTS+"_"):
		return strconv.ParseInt(fileName[1+len(SEGMENTS):], 36, 64)
	default:
		return 0, errors.New(fmt.Sprintf("fileName \"%v\" is not a segments file", fileName))
	}
}

// Returns true if the file name is a commit file: "segments" or
// "segments_N", but not "segments.gen".
func IsSegmentsFileName(fileName string) bool {
	if fileName == SEGMENTS {
		return true
	}
	if !strings.HasPrefix(fileName, SEGMENTS+"_") {
		return false
	}
	_, err := GenerationFromSegmentsFileName(fileName)
	return err == nil
}

/*
All files created by codecs must match this pattern (checked in SegmentInfo)
*/
var CODEC_FILE_PATTERN = regexp.MustCompile("^_[a-z0-9]+(_.*)?\\..*$")
