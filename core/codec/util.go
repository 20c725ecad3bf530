package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/core/util"
)

// codecs/CodecUtil.java

/* Constant to identify the start of a codec header. */
const CODEC_MAGIC = 0x3fd76c17

/* Constant to identify the start of a codec footer. */
const FOOTER_MAGIC = ^CODEC_MAGIC

const FOOTER_LENGTH = 16

/* Length in bytes of the unique identifier stored in index headers. */
const ID_LENGTH = 16

/*
Writes a codc header, which records both a string to identify the
file and a version number. This header can be parsed and validated
with CheckHeader().

CodecHeader --> Magic,CodecName,Version

	Magic --> uint32. This identifies the start of the header. It is
	always CODEC_MAGIC.
	CodecName --> string. This is a string to identify this file.
	Version --> uint32. Records the version of the file.

Note that the length of a codec header depends only upon the name of
the codec, so this length can be computed at any time with
HeaderLength().
*/
func WriteHeader(out util.DataOutput, codec string, version int) error {
	assert2(len(codec) < 128 && isASCII(codec),
		"codec must be simple ASCII, less than 128 characters in length [got %v]", codec)
	err := out.WriteInt(CODEC_MAGIC)
	if err == nil {
		err = out.WriteString(codec)
		if err == nil {
			err = out.WriteInt(int32(version))
		}
	}
	return err
}

/*
Writes a codec header for a per-segment or per-commit file, which
records the codec header, a unique id and a suffix.

IndexHeader --> CodecHeader,ObjectID,ObjectSuffix

	ObjectID --> byte^16. Unique identifier for the object.
	ObjectSuffix --> SuffixLength,SuffixBytes
	SuffixLength --> byte
*/
func WriteIndexHeader(out util.DataOutput, codec string, version int, id []byte, suffix string) error {
	assert2(len(id) == ID_LENGTH, "Invalid id: %v", id)
	assert2(len(suffix) < 256 && isASCII(suffix), "suffix must be simple ASCII, less than 256 characters in length [got %v]", suffix)
	err := WriteHeader(out, codec, version)
	if err == nil {
		err = out.WriteBytes(id)
		if err == nil {
			err = out.WriteByte(byte(len(suffix)))
			if err == nil {
				err = out.WriteBytes([]byte(suffix))
			}
		}
	}
	return err
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

/* Computes the length of a codec header */
func HeaderLength(codec string) int {
	return 9 + len(codec)
}

/* Computes the length of an index header */
func IndexHeaderLength(codec, suffix string) int {
	return HeaderLength(codec) + ID_LENGTH + 1 + len(suffix)
}

/*
Reads and validates a header previously written with WriteHeader().
Returns the actual version found.
*/
func CheckHeader(in util.DataInput, codec string, minVersion, maxVersion int32) (v int32, err error) {
	// Safety to guard against reading a bogus string:
	actualHeader, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	if actualHeader != CODEC_MAGIC {
		return 0, NewCorruptIndexError(in, fmt.Sprintf(
			"codec header mismatch: actual header=%v vs expected header=%v",
			actualHeader, CODEC_MAGIC))
	}
	return CheckHeaderNoMagic(in, codec, minVersion, maxVersion)
}

/*
Like CheckHeader() except this version assumes the magic has already
been read and validated.
*/
func CheckHeaderNoMagic(in util.DataInput, codec string, minVersion, maxVersion int32) (v int32, err error) {
	actualCodec, err := in.ReadString()
	if err != nil {
		return 0, err
	}
	if actualCodec != codec {
		return 0, NewCorruptIndexError(in, fmt.Sprintf(
			"codec mismatch: actual codec=%v vs expected codec=%v", actualCodec, codec))
	}

	actualVersion, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	if actualVersion < minVersion {
		return 0, NewIndexFormatTooOldError(in, actualVersion, minVersion, maxVersion)
	}
	if actualVersion > maxVersion {
		return 0, NewIndexFormatTooNewError(in, actualVersion, minVersion, maxVersion)
	}

	return actualVersion, nil
}

/*
Reads and validates the id and suffix that follow a codec header
written by WriteIndexHeader(). The id is returned; when expectedID is
not nil it must match.
*/
func CheckIndexHeaderID(in util.DataInput, expectedID []byte) (id []byte, err error) {
	id = make([]byte, ID_LENGTH)
	if err = in.ReadBytes(id); err != nil {
		return nil, err
	}
	if expectedID != nil && !bytes.Equal(id, expectedID) {
		return nil, NewCorruptIndexError(in, fmt.Sprintf(
			"file mismatch, expected id=%v, got=%v", IDToString(expectedID), IDToString(id)))
	}
	return id, nil
}

func CheckIndexHeaderSuffix(in util.DataInput, expectedSuffix string) error {
	suffixLength, err := in.ReadByte()
	if err != nil {
		return err
	}
	suffixBytes := make([]byte, suffixLength)
	if err = in.ReadBytes(suffixBytes); err != nil {
		return err
	}
	if suffix := string(suffixBytes); suffix != expectedSuffix {
		return NewCorruptIndexError(in, fmt.Sprintf(
			"file mismatch, expected suffix=%v, got=%v", expectedSuffix, suffix))
	}
	return nil
}

// Reads the codec name of a header without validating the version.
func ReadHeaderName(in util.DataInput) (string, error) {
	actualHeader, err := in.ReadInt()
	if err != nil {
		return "", err
	}
	if actualHeader != CODEC_MAGIC {
		return "", NewCorruptIndexError(in, fmt.Sprintf(
			"codec header mismatch: actual header=%v vs expected header=%v",
			actualHeader, CODEC_MAGIC))
	}
	return in.ReadString()
}

func IDToString(id []byte) string {
	var buf bytes.Buffer
	for _, b := range id {
		buf.WriteString(strconv.FormatInt(int64(b>>4), 36))
		buf.WriteString(strconv.FormatInt(int64(b&0xf), 36))
	}
	return buf.String()
}

/*
Writes a codec footer, which records both a checksum algorithm ID and
a checksum. This footer can be parsed and validated with CheckFooter().

CodecFooter --> Magic,AlgorithmID,Checksum
  - Magic --> uint32. This identifies the start of the footer. It is
    always FOOTER_MAGIC.
  - AlgorithmID --> uing32. This indicates the checksum algorithm
    used. Currently this is always 0, for zlib-crc32.
  - Checksum --> uint64. The actual checksum value for all previous
    bytes in the stream, including the bytes from Magic and AlgorithmID.
*/
func WriteFooter(out store.IndexOutput) (err error) {
	if err = out.WriteInt(FOOTER_MAGIC); err == nil {
		if err = out.WriteInt(0); err == nil {
			err = out.WriteLong(out.Checksum())
		}
	}
	return
}

/* Validates the codec footer previously written by WriteFooter(). */
func CheckFooter(in store.ChecksumIndexInput) (cs int64, err error) {
	if remaining := in.Length() - in.FilePointer(); remaining != FOOTER_LENGTH {
		if remaining < FOOTER_LENGTH {
			return 0, NewCorruptIndexError(in, fmt.Sprintf(
				"misplaced codec footer (file truncated?): remaining=%v, expected=%v",
				remaining, FOOTER_LENGTH))
		}
		return 0, NewCorruptIndexError(in, fmt.Sprintf(
			"misplaced codec footer (file extended?): remaining=%v, expected=%v",
			remaining, FOOTER_LENGTH))
	}
	if err = validateFooter(in); err != nil {
		return 0, err
	}
	cs = in.Checksum()
	var cs2 int64
	if cs2, err = in.ReadLong(); err != nil {
		return 0, err
	}
	if cs != cs2 {
		return 0, NewCorruptIndexError(in, fmt.Sprintf(
			"checksum failed (hardware problem?) : expected=%v actual=%v",
			strconv.FormatInt(cs2, 16), strconv.FormatInt(cs, 16)))
	}
	return cs, nil
}

/*
Validates the legacy trailing checksum of files written before codec
footers existed: a long holding the checksum of all previous bytes,
which must end the file.
*/
func CheckLegacyChecksum(in store.ChecksumIndexInput) error {
	checksumNow := in.Checksum()
	checksumThen, err := in.ReadLong()
	if err != nil {
		return err
	}
	if checksumNow != checksumThen {
		return NewCorruptIndexError(in, fmt.Sprintf(
			"checksum mismatch in segments file: expected=%v actual=%v",
			strconv.FormatInt(checksumThen, 16), strconv.FormatInt(checksumNow, 16)))
	}
	return CheckEOF(in)
}

func validateFooter(in util.DataInput) error {
	magic, err := in.ReadInt()
	if err != nil {
		return err
	}
	if magic != FOOTER_MAGIC {
		return NewCorruptIndexError(in, fmt.Sprintf(
			"codec footer mismatch: actual footer=%v vs expected footer=%v",
			magic, FOOTER_MAGIC))
	}

	algorithmId, err := in.ReadInt()
	if err != nil {
		return err
	}
	if algorithmId != 0 {
		return NewCorruptIndexError(in, fmt.Sprintf(
			"codec footer mismatch: unknown algorithmID: %v", algorithmId))
	}
	return nil
}

/* Checks that the stream is positioned at the end, and returns error if it is not. */
func CheckEOF(in store.IndexInput) error {
	if in.FilePointer() != in.Length() {
		return NewCorruptIndexError(in, fmt.Sprintf(
			"did not read all bytes from file: read %v vs size %v",
			in.FilePointer(), in.Length()))
	}
	return nil
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
