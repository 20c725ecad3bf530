package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/balzaczyy/goluke/core/util"
)

// index/SegmentInfo.java

/*
Information about a segment such as it's name, directory, and files
related to the segment. Instances are decoded from a segment's .si
file and never modified afterwards.
*/
type SegmentInfo struct {
	Name           string
	version        string
	docCount       int // number of docs in seg
	isCompoundFile bool
	id             []byte
	codecName      string
	infoCodec      string // header codec name of the .si file
	diagnostics    map[string]string
	files          map[string]bool
	attributes     map[string]string // codec-specific key/values
}

func NewSegmentInfo(version, name string, docCount int, isCompoundFile bool,
	id []byte, diagnostics, attributes map[string]string) *SegmentInfo {
	if diagnostics == nil {
		diagnostics = make(map[string]string)
	}
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &SegmentInfo{
		Name:           name,
		version:        version,
		docCount:       docCount,
		isCompoundFile: isCompoundFile,
		id:             id,
		diagnostics:    diagnostics,
		files:          make(map[string]bool),
		attributes:     attributes,
	}
}

// Returns the codec attributes map, never nil.
func (si *SegmentInfo) Attributes() map[string]string {
	return si.attributes
}

/* Returns diagnostics saved into the segment when it was written .*/
func (si *SegmentInfo) Diagnostics() map[string]string {
	return si.diagnostics
}

/* Returns true if this segment is stored as a compound file */
func (si *SegmentInfo) IsCompoundFile() bool {
	return si.isCompoundFile
}

/* Return name of the codec that wrote this segment. */
func (si *SegmentInfo) CodecName() string {
	return si.codecName
}

func (si *SegmentInfo) SetCodecName(name string) {
	si.codecName = name
}

// Returns the codec name found in the header of the .si file.
func (si *SegmentInfo) InfoCodecName() string {
	return si.infoCodec
}

func (si *SegmentInfo) SetInfoCodecName(name string) {
	si.infoCodec = name
}

func (si *SegmentInfo) DocCount() int {
	return si.docCount
}

// Returns the unique id of this segment, or nil for pre-5.0 segments.
func (si *SegmentInfo) ID() []byte {
	return si.id
}

/* Returns the version of the code which wrote the segment. */
func (si *SegmentInfo) Version() string {
	return si.version
}

/* Return all files referenced by this SegmentInfo. */
func (si *SegmentInfo) Files() map[string]bool {
	return si.files
}

/* Sets the files written for this segment. */
func (si *SegmentInfo) SetFiles(files map[string]bool) error {
	if err := checkFileNames(files); err != nil {
		return err
	}
	si.files = files
	return nil
}

/* Add this file to the set of files written for this segment. */
func (si *SegmentInfo) AddFile(file string) error {
	if err := checkFileNames(map[string]bool{file: true}); err != nil {
		return err
	}
	si.files[file] = true
	return nil
}

func checkFileNames(files map[string]bool) error {
	for file := range files {
		if !util.CODEC_FILE_PATTERN.MatchString(file) {
			return fmt.Errorf("invalid codec filename '%v', must match: %v", file, util.CODEC_FILE_PATTERN)
		}
	}
	return nil
}

func (si *SegmentInfo) String() string {
	return si.StringOf(0)
}

func (si *SegmentInfo) StringOf(delCount int) string {
	var buf bytes.Buffer
	buf.WriteString(si.Name)
	buf.WriteString("(")
	if si.version == "" {
		buf.WriteString("?")
	} else {
		buf.WriteString(si.version)
	}
	buf.WriteString("):")
	if si.isCompoundFile {
		buf.WriteString("c")
	} else {
		buf.WriteString("C")
	}
	buf.WriteString(strconv.Itoa(si.docCount))

	if delCount != 0 {
		buf.WriteString("/")
		buf.WriteString(strconv.Itoa(delCount))
	}
	return buf.String()
}
