package index

import (
	"errors"
	"fmt"
	"os"
)

// Returned when no commit can be listed at all: the directory is
// missing, cannot be listed or holds no segments file.
type DirectoryUnreadableError struct {
	Dir   string
	Cause error
}

func (err *DirectoryUnreadableError) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("directory unreadable: %v", err.Dir)
	}
	return fmt.Sprintf("directory unreadable: %v: %v", err.Dir, err.Cause)
}

func (err *DirectoryUnreadableError) Unwrap() error {
	return err.Cause
}

// A segments file that fails header, checksum or structural checks.
type CorruptCommitError struct {
	Generation int64
	FileName   string
	Cause      error
}

func (err *CorruptCommitError) Error() string {
	return fmt.Sprintf("corrupt commit %v (%v): %v", err.Generation, err.FileName, err.Cause)
}

func (err *CorruptCommitError) Unwrap() error {
	return err.Cause
}

// A segment whose .si file cannot be decoded.
type SegmentCorruptError struct {
	Generation int64
	Segment    string
	Cause      error
}

func (err *SegmentCorruptError) Error() string {
	return fmt.Sprintf("corrupt segment %v in commit %v: %v", err.Segment, err.Generation, err.Cause)
}

func (err *SegmentCorruptError) Unwrap() error {
	return err.Cause
}

// A segment whose counts are inconsistent, e.g. more deletions than
// documents.
type InvariantViolationError struct {
	Generation int64
	Segment    string
	Msg        string
}

func (err *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated by segment %v in commit %v: %v", err.Segment, err.Generation, err.Msg)
}

// A generation that was listed before is no longer on disk.
type CommitVanishedError struct {
	Generation int64
	FileName   string
	Cause      error
}

func (err *CommitVanishedError) Error() string {
	return fmt.Sprintf("commit %v vanished: %v is gone", err.Generation, err.FileName)
}

func (err *CommitVanishedError) Unwrap() error {
	return err.Cause
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
