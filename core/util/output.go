package util

import (
	"encoding/binary"

	"golang.org/x/exp/slices"
)

// store/DataOutput.java

/*
Writes the primitive types of the index format. Only the test
fixtures and the writers of codec round-trip tests produce index
files; the inspector itself never writes.

Not safe for concurrent use.
*/
type DataOutput interface {
	DataWriter
	WriteInt(i int32) error
	WriteVInt(i int32) error
	WriteLong(i int64) error
	WriteVLong(i int64) error
	WriteString(s string) error
	WriteStringStringMap(m map[string]string) error
	WriteStringSet(m map[string]bool) error
}

type DataWriter interface {
	WriteByte(b byte) error
	WriteBytes(buf []byte) error
}

type DataOutputImpl struct {
	Writer DataWriter
}

func NewDataOutput(part DataWriter) *DataOutputImpl {
	assert(part != nil)
	return &DataOutputImpl{Writer: part}
}

// Big-endian, four bytes.
func (out *DataOutputImpl) WriteInt(i int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(i))
	return out.Writer.WriteBytes(buf[:])
}

// Big-endian, eight bytes.
func (out *DataOutputImpl) WriteLong(i int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(i))
	return out.Writer.WriteBytes(buf[:])
}

/*
Seven bits per byte, least significant group first; the high bit of
a byte is set when more bytes follow. A negative int always takes
five bytes.
*/
func (out *DataOutputImpl) WriteVInt(i int32) error {
	return out.writeVarint(uint64(uint32(i)))
}

// Like WriteVInt(). Negative numbers are not supported.
func (out *DataOutputImpl) WriteVLong(i int64) error {
	assert(i >= 0)
	return out.writeVarint(uint64(i))
}

func (out *DataOutputImpl) writeVarint(v uint64) error {
	buf := make([]byte, 0, 10)
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return out.Writer.WriteBytes(append(buf, byte(v)))
}

// VInt byte length followed by the UTF-8 bytes.
func (out *DataOutputImpl) WriteString(s string) error {
	if err := out.WriteVInt(int32(len(s))); err != nil {
		return err
	}
	return out.Writer.WriteBytes([]byte(s))
}

// Int count, then key and value strings in key order.
func (out *DataOutputImpl) WriteStringStringMap(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	if err := out.writeSorted(keys); err != nil {
		return err
	}
	for _, k := range keys {
		if err := out.WriteString(k); err != nil {
			return err
		}
		if err := out.WriteString(m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Int count, then the values in order.
func (out *DataOutputImpl) WriteStringSet(m map[string]bool) error {
	values := make([]string, 0, len(m))
	for v := range m {
		values = append(values, v)
	}
	if err := out.writeSorted(values); err != nil {
		return err
	}
	for _, v := range values {
		if err := out.WriteString(v); err != nil {
			return err
		}
	}
	return nil
}

// Sorts names in place and writes their count.
func (out *DataOutputImpl) writeSorted(names []string) error {
	slices.Sort(names)
	return out.WriteInt(int32(len(names)))
}
