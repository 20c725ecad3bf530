package util

import (
	"fmt"
	"io"
	"strings"
)

// util/IOUtils.java

// Error holding the first error raised while closing a group of
// resources, plus any that were suppressed after it.
type CompoundError struct {
	errs []error
}

func (e *CompoundError) Error() string {
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%v (suppressed: %v)", msgs[0], strings.Join(msgs[1:], "; "))
}

func (e *CompoundError) Unwrap() []error {
	return e.errs
}

/*
Closes all given objects. When priorErr is not nil, it is returned
and any close errors are dropped; otherwise the first close error is
returned, carrying the later ones.
*/
func CloseWhileHandlingError(priorErr error, objects ...io.Closer) error {
	err := Close(objects...)
	if priorErr != nil {
		return priorErr
	}
	return err
}

// Closes all given objects, ignoring errors.
func CloseWhileSuppressingError(objects ...io.Closer) {
	for _, object := range objects {
		safeClose(object)
	}
}

// Closes all given objects, and returns the first error hit, if any.
func Close(objects ...io.Closer) error {
	var errs []error
	for _, object := range objects {
		if err := safeClose(object); err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &CompoundError{errs}
	}
}

func safeClose(obj io.Closer) (err error) {
	if obj != nil {
		err = obj.Close()
	}
	return
}

func assert(ok bool) {
	assert2(ok, "assert fail")
}

func assert2(ok bool, msg string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(msg, args...))
	}
}
