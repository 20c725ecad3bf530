package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/balzaczyy/goluke/core/util"
)

// store/IndexInput.java

/*
Abstract base class for input from a file in a Directory. A random-
access input stream. Used for all Lucene index input operations.

IndexInput may only be used from one goroutine, because it is not
thread safe (it keeps internal state like file position). To allow
concurrent use, every IndexInput instance must be cloned before it is
used in another goroutine.
*/
type IndexInput interface {
	io.Closer
	util.DataInput
	// Returns the current position in this file, where the next read will occur.
	FilePointer() int64
	// Sets current position in this file, where the next read will occur.
	Seek(pos int64) error
	// The number of bytes in the file.
	Length() int64
	// Returns an independently positioned input over the same data.
	Clone() IndexInput
}

type IndexInputImpl struct {
	*util.DataInputImpl
	desc string
}

func NewIndexInputImpl(desc string, r util.DataReader) *IndexInputImpl {
	assert2(desc != "", "resourceDescription must not be null")
	return &IndexInputImpl{util.NewDataInput(r), desc}
}

func (in *IndexInputImpl) String() string {
	return in.desc
}

const BUFFER_SIZE = 1024

// store/BufferedIndexInput.java

/*
IndexInput reading from an io.ReaderAt through a private buffer. The
underlying ReaderAt may be shared by clones: every read uses an
explicit offset, so no seek state lives in the shared handle.
*/
type readerAtIndexInput struct {
	*IndexInputImpl
	src    io.ReaderAt
	closer io.Closer // nil for clones
	length int64

	buffer      []byte
	bufferStart int64 // position in file of buffer
	bufferLen   int
	bufferPos   int
}

func newReaderAtIndexInput(desc string, src io.ReaderAt, length int64, closer io.Closer) *readerAtIndexInput {
	ans := &readerAtIndexInput{src: src, closer: closer, length: length}
	ans.IndexInputImpl = NewIndexInputImpl(desc, ans)
	return ans
}

func (in *readerAtIndexInput) refill() error {
	start := in.bufferStart + int64(in.bufferPos)
	end := start + BUFFER_SIZE
	if end > in.length {
		end = in.length
	}
	n := int(end - start)
	if n <= 0 {
		return errors.New(fmt.Sprintf("read past EOF: %v", in))
	}
	if in.buffer == nil {
		in.buffer = make([]byte, BUFFER_SIZE)
	}
	read, err := in.src.ReadAt(in.buffer[:n], start)
	if read < n {
		if err == nil || err == io.EOF {
			err = errors.New(fmt.Sprintf("read past EOF: %v", in))
		}
		return err
	}
	in.bufferStart, in.bufferLen, in.bufferPos = start, n, 0
	return nil
}

func (in *readerAtIndexInput) ReadByte() (b byte, err error) {
	if in.bufferPos >= in.bufferLen {
		if err = in.refill(); err != nil {
			return 0, err
		}
	}
	b = in.buffer[in.bufferPos]
	in.bufferPos++
	return b, nil
}

func (in *readerAtIndexInput) ReadBytes(buf []byte) error {
	for len(buf) > 0 {
		if in.bufferPos >= in.bufferLen {
			if err := in.refill(); err != nil {
				return err
			}
		}
		n := copy(buf, in.buffer[in.bufferPos:in.bufferLen])
		in.bufferPos += n
		buf = buf[n:]
	}
	return nil
}

func (in *readerAtIndexInput) FilePointer() int64 {
	return in.bufferStart + int64(in.bufferPos)
}

func (in *readerAtIndexInput) Seek(pos int64) error {
	if pos < 0 || pos > in.length {
		return errors.New(fmt.Sprintf("seek position %v out of bounds [0, %v]: %v", pos, in.length, in))
	}
	if pos >= in.bufferStart && pos < in.bufferStart+int64(in.bufferLen) {
		in.bufferPos = int(pos - in.bufferStart)
		return nil
	}
	in.bufferStart, in.bufferLen, in.bufferPos = pos, 0, 0
	return nil
}

func (in *readerAtIndexInput) Length() int64 {
	return in.length
}

func (in *readerAtIndexInput) Clone() IndexInput {
	ans := newReaderAtIndexInput(in.desc, in.src, in.length, nil)
	ans.bufferStart = in.FilePointer()
	return ans
}

func (in *readerAtIndexInput) Close() error {
	if in.closer != nil {
		return in.closer.Close()
	}
	return nil
}
