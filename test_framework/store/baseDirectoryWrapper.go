package store

import (
	"fmt"
	"sync"

	"github.com/balzaczyy/goluke/core/store"
)

// store/BaseDirectoryWrapper.java

/*
Delegates to another directory and tracks the inputs it opened. Close()
fails if some of them were never closed.
*/
type BaseDirectoryWrapper struct {
	*store.DirectoryImpl
	// our in directory
	delegate store.Directory

	sync.Locker // simulate Java's synchronized keyword
	openFiles   map[string]int
	closed      bool
}

func NewBaseDirectoryWrapper(delegate store.Directory, spi store.DirectoryImplSPI) *BaseDirectoryWrapper {
	ans := &BaseDirectoryWrapper{
		delegate:  delegate,
		Locker:    &sync.Mutex{},
		openFiles: make(map[string]int),
	}
	ans.DirectoryImpl = store.NewDirectoryImpl(spi)
	return ans
}

func (dw *BaseDirectoryWrapper) addFileHandle(name string) {
	dw.Lock() // synchronized
	defer dw.Unlock()
	dw.openFiles[name]++
}

func (dw *BaseDirectoryWrapper) removeOpenFile(name string) {
	dw.Lock() // synchronized
	defer dw.Unlock()
	if v := dw.openFiles[name]; v == 1 {
		delete(dw.openFiles, name)
	} else if v > 1 {
		dw.openFiles[name] = v - 1
	}
}

// Returns the number of inputs opened and not closed yet.
func (dw *BaseDirectoryWrapper) OpenFileCount() int {
	dw.Lock() // synchronized
	defer dw.Unlock()
	n := 0
	for _, v := range dw.openFiles {
		n += v
	}
	return n
}

func (dw *BaseDirectoryWrapper) Close() error {
	dw.Lock()
	if dw.closed {
		dw.Unlock()
		return nil
	}
	dw.closed = true
	var leaked []string
	for name := range dw.openFiles {
		leaked = append(leaked, name)
	}
	dw.Unlock()
	if err := dw.delegate.Close(); err != nil {
		return err
	}
	if len(leaked) > 0 {
		return fmt.Errorf("MockDirectoryWrapper: cannot close: there are still open files: %v", leaked)
	}
	return nil
}

func (dw *BaseDirectoryWrapper) String() string {
	return fmt.Sprintf("BaseDirectoryWrapper(%v)", dw.delegate)
}
