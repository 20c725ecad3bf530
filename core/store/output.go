package store

import (
	"bytes"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/balzaczyy/goluke/core/util"
)

// store/IndexOutput.java

/*
Abstract base class for output to a file in a Directory. A random-
access output stream. Used for all Lucene index output operations.
*/
type IndexOutput interface {
	io.Closer
	util.DataOutput
	// Returns the current position in this file, where the next write will occur.
	FilePointer() int64
	// Returns the current checksum of bytes written so far
	Checksum() int64
}

// store/RAMOutputStream.java

type RAMOutputStream struct {
	*util.DataOutputImpl
	name    string
	buf     *bytes.Buffer
	crc     hash.Hash32
	publish func([]byte)
	closed  bool
}

func newRAMOutputStream(name string, publish func([]byte)) *RAMOutputStream {
	ans := &RAMOutputStream{
		name:    name,
		buf:     new(bytes.Buffer),
		crc:     crc32.NewIEEE(),
		publish: publish,
	}
	ans.DataOutputImpl = util.NewDataOutput(ans)
	return ans
}

func (out *RAMOutputStream) WriteByte(b byte) error {
	return out.WriteBytes([]byte{b})
}

func (out *RAMOutputStream) WriteBytes(buf []byte) error {
	if out.closed {
		return fmt.Errorf("output %v is already closed", out.name)
	}
	out.buf.Write(buf)
	out.crc.Write(buf)
	return nil
}

func (out *RAMOutputStream) FilePointer() int64 {
	return int64(out.buf.Len())
}

func (out *RAMOutputStream) Checksum() int64 {
	return int64(out.crc.Sum32())
}

func (out *RAMOutputStream) Close() error {
	if !out.closed {
		out.closed = true
		out.publish(out.buf.Bytes())
	}
	return nil
}

func (out *RAMOutputStream) String() string {
	return fmt.Sprintf("RAMOutputStream(name=%v)", out.name)
}
