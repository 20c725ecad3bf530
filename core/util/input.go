package util

import (
	"errors"
	"fmt"
)

// store/DataInput.java

/*
Abstract base class for performing read operations of Lucene's low-level
data types.

DataInput may only be used from one goroutine, because it is not thread
safe (it keeps internal state like file position). To allow concurrent
use, every DataInput instance must be cloned before used in another
goroutine.
*/
type DataInput interface {
	ReadByte() (b byte, err error)
	ReadBytes(buf []byte) error
	ReadInt() (n int32, err error)
	ReadVInt() (n int32, err error)
	ReadLong() (n int64, err error)
	ReadVLong() (n int64, err error)
	ReadString() (s string, err error)
	ReadStringStringMap() (m map[string]string, err error)
	ReadStringSet() (m map[string]bool, err error)
}

type DataReader interface {
	/* Reads and returns a single byte.	*/
	ReadByte() (b byte, err error)
	/* Reads a specified number of bytes into an array */
	ReadBytes(buf []byte) error
}

// Upper bound on a single length-prefixed string. Anything larger is
// certainly a corrupt length prefix and would otherwise allocate
// arbitrary amounts of memory.
const MAX_STRING_LENGTH = 1 << 24

type DataInputImpl struct {
	Reader DataReader
}

func NewDataInput(spi DataReader) *DataInputImpl {
	return &DataInputImpl{Reader: spi}
}

func (in *DataInputImpl) ReadInt() (n int32, err error) {
	var b1, b2, b3, b4 byte
	if b1, err = in.Reader.ReadByte(); err == nil {
		if b2, err = in.Reader.ReadByte(); err == nil {
			if b3, err = in.Reader.ReadByte(); err == nil {
				if b4, err = in.Reader.ReadByte(); err == nil {
					return (int32(b1) << 24) | (int32(b2) << 16) | (int32(b3) << 8) | int32(b4), nil
				}
			}
		}
	}
	return 0, err
}

func (in *DataInputImpl) ReadVInt() (n int32, err error) {
	var b byte
	for shift := uint(0); shift <= 28; shift += 7 {
		if b, err = in.Reader.ReadByte(); err != nil {
			return 0, err
		}
		if shift == 28 {
			// Warning: the next ands use 0x0F / 0xF0 - beware copy/paste errors:
			n |= (int32(b) & 0x0F) << 28
			if b&0xF0 != 0 {
				return 0, errors.New("Invalid vInt detected (too many bits)")
			}
			return n, nil
		}
		n |= (int32(b) & 0x7F) << shift
		if b < 128 {
			return n, nil
		}
	}
	return n, nil
}

func (in *DataInputImpl) ReadLong() (n int64, err error) {
	d1, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	d2, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	return (int64(d1) << 32) | int64(d2)&0xFFFFFFFF, nil
}

func (in *DataInputImpl) ReadVLong() (n int64, err error) {
	var b byte
	for shift := uint(0); shift <= 56; shift += 7 {
		if b, err = in.Reader.ReadByte(); err != nil {
			return 0, err
		}
		n |= int64(b&0x7F) << shift
		if b < 128 {
			return n, nil
		}
	}
	return 0, errors.New("Invalid vLong detected (negative values disallowed)")
}

func (in *DataInputImpl) ReadString() (s string, err error) {
	length, err := in.ReadVInt()
	if err != nil {
		return "", err
	}
	if length < 0 || length > MAX_STRING_LENGTH {
		return "", errors.New(fmt.Sprintf("invalid string length: %v", length))
	}
	bytes := make([]byte, length)
	if err = in.Reader.ReadBytes(bytes); err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (in *DataInputImpl) readCount() (int, error) {
	count, err := in.ReadInt()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, errors.New(fmt.Sprintf("invalid entry count: %v", count))
	}
	return int(count), nil
}

/*
Reads a map previously written with WriteStringStringMap(): an int32
count followed by that many key/value string pairs.
*/
func (in *DataInputImpl) ReadStringStringMap() (m map[string]string, err error) {
	count, err := in.readCount()
	if err != nil {
		return nil, err
	}
	m = make(map[string]string)
	for i := 0; i < count; i++ {
		key, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

func (in *DataInputImpl) ReadStringSet() (s map[string]bool, err error) {
	count, err := in.readCount()
	if err != nil {
		return nil, err
	}
	s = make(map[string]bool)
	for i := 0; i < count; i++ {
		key, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		s[key] = true
	}
	return s, nil
}
