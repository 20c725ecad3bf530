package store

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("store")

// store/IOContext.java

const (
	IO_CONTEXT_TYPE_READ    = 2
	IO_CONTEXT_TYPE_DEFAULT = 4
)

type IOContextType int

var (
	IO_CONTEXT_DEFAULT  = IOContext{context: IOContextType(IO_CONTEXT_TYPE_DEFAULT)}
	IO_CONTEXT_READONCE = NewIOContextBool(true)
	IO_CONTEXT_READ     = NewIOContextBool(false)
)

/*
IOContext holds additional details on the read context. Only read
contexts exist here: nothing in this module ever writes through a
Directory it did not create itself.
*/
type IOContext struct {
	context  IOContextType
	readOnce bool
}

func NewIOContextBool(readOnce bool) IOContext {
	return IOContext{
		context:  IOContextType(IO_CONTEXT_TYPE_READ),
		readOnce: readOnce,
	}
}

func (ctx IOContext) String() string {
	return fmt.Sprintf("IOContext [context=%v, readOnce=%v]", ctx.context, ctx.readOnce)
}

// store/Directory.java

/*
A Directory is a flat list of files. Files may be written once, when
they are created. Once a file is created it may only be opened for
read, or deleted. Random access is permitted both when reading and
writing.

This is the read-only surface the commit inspector consumes. It must
tolerate concurrent readers; every OpenInput() returns an
independently positioned input.
*/
type Directory interface {
	io.Closer
	// Returns the names of all files in the directory.
	ListAll() (paths []string, err error)
	// Returns true iff a file with the given name exists.
	FileExists(name string) bool
	// Returns the length of a file in the directory. This method
	// follows the following contract:
	// 	- Must return error if the file doesn't exists.
	// 	- Returns a value >=0 if the file exists, which specifies its
	// length.
	FileLength(name string) (n int64, err error)
	// Returns a stream reading an existing file.
	OpenInput(name string, context IOContext) (in IndexInput, err error)
	// Returns a stream reading an existing file, computing checksum as it reads
	OpenChecksumInput(name string, ctx IOContext) (ChecksumIndexInput, error)
}

type DirectoryImplSPI interface {
	OpenInput(string, IOContext) (IndexInput, error)
}

type DirectoryImpl struct {
	spi    DirectoryImplSPI
	isOpen int32 // atomic
}

func NewDirectoryImpl(spi DirectoryImplSPI) *DirectoryImpl {
	return &DirectoryImpl{spi: spi, isOpen: 1}
}

func (d *DirectoryImpl) OpenChecksumInput(name string, ctx IOContext) (ChecksumIndexInput, error) {
	in, err := d.spi.OpenInput(name, ctx)
	if err != nil {
		return nil, err
	}
	return newBufferedChecksumIndexInput(in), nil
}

func (d *DirectoryImpl) IsOpen() bool {
	return atomic.LoadInt32(&d.isOpen) == 1
}

func (d *DirectoryImpl) markClosed() {
	atomic.StoreInt32(&d.isOpen, 0)
}

// Returns ErrAlreadyClosed if this Directory is closed.
func (d *DirectoryImpl) EnsureOpen() error {
	if !d.IsOpen() {
		return ErrAlreadyClosed
	}
	return nil
}

var ErrAlreadyClosed = errors.New("this Directory is closed")

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
