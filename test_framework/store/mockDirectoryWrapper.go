package store

import (
	"errors"
	"fmt"
	"os"
	"sync"

	cs "github.com/balzaczyy/goluke/core/store"
)

/*
Directory wrapper used by tests to simulate damage: it can serve
corrupted bytes for a file, hide files as if another process deleted
them, and fail the listing itself. Every input it opens is tracked.
*/
type MockDirectoryWrapper struct {
	*BaseDirectoryWrapper

	lock      sync.RWMutex
	corrupted map[string][]byte
	vanished  map[string]bool
	listErr   error
	opened    map[string]int // total opens per file, for at-most-once checks
}

func NewMockDirectoryWrapper(delegate cs.Directory) *MockDirectoryWrapper {
	ans := &MockDirectoryWrapper{
		corrupted: make(map[string][]byte),
		vanished:  make(map[string]bool),
		opened:    make(map[string]int),
	}
	ans.BaseDirectoryWrapper = NewBaseDirectoryWrapper(delegate, ans)
	return ans
}

/*
Flips every bit of the byte at offset (counted from the end of the
file when negative) in the content served for name. The delegate is
left untouched.
*/
func (mdw *MockDirectoryWrapper) CorruptFile(name string, offset int) error {
	data, err := mdw.readAll(name)
	if err != nil {
		return err
	}
	if offset < 0 {
		offset += len(data)
	}
	if offset < 0 || offset >= len(data) {
		return fmt.Errorf("offset %v out of range for %v (length %v)", offset, name, len(data))
	}
	data[offset] ^= 0xff
	mdw.lock.Lock()
	defer mdw.lock.Unlock()
	mdw.corrupted[name] = data
	return nil
}

// Hides the file, as if it had been deleted after being listed.
func (mdw *MockDirectoryWrapper) Vanish(name string) {
	mdw.lock.Lock()
	defer mdw.lock.Unlock()
	mdw.vanished[name] = true
}

// Makes ListAll() fail with err; nil restores it.
func (mdw *MockDirectoryWrapper) SetListAllError(err error) {
	mdw.lock.Lock()
	defer mdw.lock.Unlock()
	mdw.listErr = err
}

// Returns how many times name was opened.
func (mdw *MockDirectoryWrapper) OpenCount(name string) int {
	mdw.lock.RLock()
	defer mdw.lock.RUnlock()
	return mdw.opened[name]
}

func (mdw *MockDirectoryWrapper) isVanished(name string) bool {
	mdw.lock.RLock()
	defer mdw.lock.RUnlock()
	return mdw.vanished[name]
}

func notExist(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
}

func (mdw *MockDirectoryWrapper) ListAll() ([]string, error) {
	mdw.lock.RLock()
	listErr := mdw.listErr
	mdw.lock.RUnlock()
	if listErr != nil {
		return nil, listErr
	}
	names, err := mdw.delegate.ListAll()
	if err != nil {
		return nil, err
	}
	ans := names[:0:0]
	for _, name := range names {
		if !mdw.isVanished(name) {
			ans = append(ans, name)
		}
	}
	return ans, nil
}

func (mdw *MockDirectoryWrapper) FileExists(name string) bool {
	return !mdw.isVanished(name) && mdw.delegate.FileExists(name)
}

func (mdw *MockDirectoryWrapper) FileLength(name string) (int64, error) {
	if mdw.isVanished(name) {
		return 0, notExist("stat", name)
	}
	mdw.lock.RLock()
	data, ok := mdw.corrupted[name]
	mdw.lock.RUnlock()
	if ok {
		return int64(len(data)), nil
	}
	return mdw.delegate.FileLength(name)
}

func (mdw *MockDirectoryWrapper) OpenInput(name string, ctx cs.IOContext) (cs.IndexInput, error) {
	if mdw.isVanished(name) {
		return nil, notExist("open", name)
	}
	mdw.lock.Lock()
	mdw.opened[name]++
	data, ok := mdw.corrupted[name]
	mdw.lock.Unlock()

	var in cs.IndexInput
	if ok {
		ram := cs.NewRAMDirectory()
		ram.SetFileContent(name, data)
		var err error
		if in, err = ram.OpenInput(name, ctx); err != nil {
			return nil, err
		}
	} else {
		var err error
		if in, err = mdw.delegate.OpenInput(name, ctx); err != nil {
			return nil, err
		}
	}
	mdw.addFileHandle(name)
	return &MockIndexInputWrapper{in, name, mdw, false}, nil
}

func (mdw *MockDirectoryWrapper) readAll(name string) ([]byte, error) {
	in, err := mdw.delegate.OpenInput(name, cs.IO_CONTEXT_READONCE)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	data := make([]byte, in.Length())
	if err = in.ReadBytes(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (mdw *MockDirectoryWrapper) String() string {
	return fmt.Sprintf("MockDirectoryWrapper(%v)", mdw.delegate)
}

// store/MockIndexInputWrapper.java

// Used by MockDirectoryWrapper to create an input and track when it's closed.
type MockIndexInputWrapper struct {
	cs.IndexInput
	name   string
	dir    *MockDirectoryWrapper
	closed bool
}

var ErrDoubleClose = errors.New("already closed")

func (in *MockIndexInputWrapper) Close() error {
	if in.closed {
		return ErrDoubleClose
	}
	in.closed = true
	in.dir.removeOpenFile(in.name)
	return in.IndexInput.Close()
}

func (in *MockIndexInputWrapper) String() string {
	return fmt.Sprintf("MockIndexInputWrapper(%v)", in.IndexInput)
}
