package codec

import (
	"fmt"
)

/*
This error is returned when Lucene detects an inconsistency in the
index.
*/
type CorruptIndexError struct {
	Msg      string
	Resource string
}

func NewCorruptIndexError(in interface{}, msg string) *CorruptIndexError {
	return &CorruptIndexError{Msg: msg, Resource: fmt.Sprintf("%v", in)}
}

func (err *CorruptIndexError) Error() string {
	return fmt.Sprintf("%v (resource=%v)", err.Msg, err.Resource)
}

// This error is returned when Lucene detects an index that is too old
// for this Lucene version.
type IndexFormatTooOldError struct {
	Resource                        string
	Version, MinVersion, MaxVersion int32
}

func NewIndexFormatTooOldError(in interface{}, version, minVersion, maxVersion int32) *IndexFormatTooOldError {
	return &IndexFormatTooOldError{fmt.Sprintf("%v", in), version, minVersion, maxVersion}
}

func (err *IndexFormatTooOldError) Error() string {
	return fmt.Sprintf(
		"Format version is not supported (resource: %v): %v (needs to be between %v and %v). This version of Lucene only supports indexes created with release 4.0 and later.",
		err.Resource, err.Version, err.MinVersion, err.MaxVersion)
}

// This error is returned when Lucene detects an index that is newer
// than this Lucene version.
type IndexFormatTooNewError struct {
	Resource                        string
	Version, MinVersion, MaxVersion int32
}

func NewIndexFormatTooNewError(in interface{}, version, minVersion, maxVersion int32) *IndexFormatTooNewError {
	return &IndexFormatTooNewError{fmt.Sprintf("%v", in), version, minVersion, maxVersion}
}

func (err *IndexFormatTooNewError) Error() string {
	return fmt.Sprintf(
		"Format version is not supported (resource: %v): %v (needs to be between %v and %v)",
		err.Resource, err.Version, err.MinVersion, err.MaxVersion)
}
