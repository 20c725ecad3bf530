package store

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// store/RAMDirectory.java

/*
A memory-resident Directory implementation. Used for tests and for
inspecting index images that were loaded into memory.

Unlike the file system directory, a RAMDirectory can create files, so
that fixtures can be written into it. The commit inspector itself
never calls CreateOutput() or DeleteFile().
*/
type RAMDirectory struct {
	*DirectoryImpl

	fileMap     map[string]*RAMFile // synchronized
	fileMapLock *sync.RWMutex
}

func NewRAMDirectory() *RAMDirectory {
	ans := &RAMDirectory{
		fileMap:     make(map[string]*RAMFile),
		fileMapLock: &sync.RWMutex{},
	}
	ans.DirectoryImpl = NewDirectoryImpl(ans)
	return ans
}

func (rd *RAMDirectory) ListAll() (names []string, err error) {
	if err = rd.EnsureOpen(); err != nil {
		return nil, err
	}
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	names = make([]string, 0, len(rd.fileMap))
	for name := range rd.fileMap {
		names = append(names, name)
	}
	return names, nil
}

func (rd *RAMDirectory) file(name string) (*RAMFile, error) {
	if err := rd.EnsureOpen(); err != nil {
		return nil, err
	}
	rd.fileMapLock.RLock()
	defer rd.fileMapLock.RUnlock()
	if f, ok := rd.fileMap[name]; ok {
		return f, nil
	}
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

// Returns true iff the named file exists in this directory
func (rd *RAMDirectory) FileExists(name string) bool {
	_, err := rd.file(name)
	return err == nil
}

// Returns the length in bytes of a file in the directory.
func (rd *RAMDirectory) FileLength(name string) (length int64, err error) {
	f, err := rd.file(name)
	if err != nil {
		return 0, err
	}
	return int64(len(f.data)), nil
}

// Returns a stream reading an existing file.
func (rd *RAMDirectory) OpenInput(name string, context IOContext) (in IndexInput, err error) {
	f, err := rd.file(name)
	if err != nil {
		return nil, err
	}
	return newReaderAtIndexInput(fmt.Sprintf("RAMInputStream(name=%v)", name),
		bytes.NewReader(f.data), int64(len(f.data)), nil), nil
}

// Removes an existing file in the directory
func (rd *RAMDirectory) DeleteFile(name string) error {
	if err := rd.EnsureOpen(); err != nil {
		return err
	}
	rd.fileMapLock.Lock()
	defer rd.fileMapLock.Unlock()
	if _, ok := rd.fileMap[name]; !ok {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrNotExist}
	}
	delete(rd.fileMap, name)
	return nil
}

// Creates a new, empty file in the directory with the given name.
// The file becomes visible when the returned output is closed.
func (rd *RAMDirectory) CreateOutput(name string, context IOContext) (out IndexOutput, err error) {
	if err = rd.EnsureOpen(); err != nil {
		return nil, err
	}
	return newRAMOutputStream(name, func(data []byte) {
		rd.fileMapLock.Lock()
		defer rd.fileMapLock.Unlock()
		rd.fileMap[name] = &RAMFile{data}
	}), nil
}

// Replaces the content of an existing file; used to simulate
// on-disk damage.
func (rd *RAMDirectory) SetFileContent(name string, data []byte) {
	rd.fileMapLock.Lock()
	defer rd.fileMapLock.Unlock()
	rd.fileMap[name] = &RAMFile{append([]byte(nil), data...)}
}

// Returns a copy of the content of a file.
func (rd *RAMDirectory) FileContent(name string) ([]byte, error) {
	f, err := rd.file(name)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), f.data...), nil
}

// Closes the store to future operations, releasing associated memory.
func (rd *RAMDirectory) Close() error {
	rd.markClosed()
	rd.fileMapLock.Lock()
	defer rd.fileMapLock.Unlock()
	rd.fileMap = make(map[string]*RAMFile)
	return nil
}

func (rd *RAMDirectory) String() string {
	return fmt.Sprintf("RAMDirectory@%p", rd)
}

// store/RAMFile.java

// Represents a file in RAM. Content is never modified in place once
// published, so inputs may share it.
type RAMFile struct {
	data []byte
}
