package store

import (
	"fmt"
	"os"
	"path/filepath"
)

type NoSuchDirectoryError struct {
	msg string
}

func newNoSuchDirectoryError(msg string) *NoSuchDirectoryError {
	return &NoSuchDirectoryError{msg}
}

func (err *NoSuchDirectoryError) Error() string {
	return err.msg
}

// store/FSDirectory.java

/*
Read-only Directory over a file system path. Every input opens its
own *os.File and reads it through ReadAt(), so any number of inputs
may be consumed concurrently.
*/
type FSDirectory struct {
	*DirectoryImpl
	path string
}

func OpenFSDirectory(path string) (d *FSDirectory, err error) {
	if path, err = filepath.Abs(path); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return nil, newNoSuchDirectoryError(fmt.Sprintf("file '%v' exists but is not a directory", path))
	}
	d = &FSDirectory{path: path}
	d.DirectoryImpl = NewDirectoryImpl(d)
	return d, nil
}

func FSDirectoryListAll(path string) (paths []string, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, newNoSuchDirectoryError(fmt.Sprintf("directory '%v' does not exist", path))
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, newNoSuchDirectoryError(fmt.Sprintf("file '%v' exists but is not a directory", path))
	}

	entries, err := f.Readdir(0)
	if err != nil {
		return nil, err
	}
	// Exclude subdirs
	for _, entry := range entries {
		if !entry.IsDir() {
			paths = append(paths, entry.Name())
		}
	}
	return paths, nil
}

func (d *FSDirectory) Path() string {
	return d.path
}

func (d *FSDirectory) ListAll() (paths []string, err error) {
	if err = d.EnsureOpen(); err != nil {
		return nil, err
	}
	return FSDirectoryListAll(d.path)
}

func (d *FSDirectory) FileExists(name string) bool {
	if d.EnsureOpen() != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(d.path, name))
	return err == nil
}

// Returns the length in bytes of a file in the directory.
func (d *FSDirectory) FileLength(name string) (n int64, err error) {
	if err = d.EnsureOpen(); err != nil {
		return 0, err
	}
	fi, err := os.Stat(filepath.Join(d.path, name))
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (d *FSDirectory) OpenInput(name string, context IOContext) (in IndexInput, err error) {
	if err = d.EnsureOpen(); err != nil {
		return nil, err
	}
	fpath := filepath.Join(d.path, name)
	log.Debugf("Opening %v...", fpath)
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return newReaderAtIndexInput(fmt.Sprintf("SimpleFSIndexInput(path='%v')", fpath), f, fi.Size(), f), nil
}

func (d *FSDirectory) Close() error {
	d.markClosed()
	return nil
}

func (d *FSDirectory) String() string {
	return fmt.Sprintf("FSDirectory@%v", d.path)
}
