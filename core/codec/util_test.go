package codec

import (
	"errors"
	"testing"

	"github.com/balzaczyy/goluke/core/store"
)

func writeFile(t *testing.T, dir *store.RAMDirectory, name string, f func(out store.IndexOutput) error) {
	out, err := dir.CreateOutput(name, store.IO_CONTEXT_DEFAULT)
	if err != nil {
		t.Fatal(err)
	}
	if err = f(out); err != nil {
		t.Fatal(err)
	}
	if err = out.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHeaderFooter(t *testing.T) {
	dir := store.NewRAMDirectory()
	writeFile(t, dir, "a", func(out store.IndexOutput) error {
		if err := WriteHeader(out, "FooBar", 5); err != nil {
			return err
		}
		if err := out.WriteString("payload"); err != nil {
			return err
		}
		return WriteFooter(out)
	})
	length, _ := dir.FileLength("a")
	assertEquals(t, int64(HeaderLength("FooBar")+8+FOOTER_LENGTH), length)

	in, err := dir.OpenChecksumInput("a", store.IO_CONTEXT_READ)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	v, err := CheckHeader(in, "FooBar", 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, int32(5), v)
	s, _ := in.ReadString()
	assertEquals(t, "payload", s)
	if _, err = CheckFooter(in); err != nil {
		t.Error(err)
	}
}

func TestHeaderMismatch(t *testing.T) {
	dir := store.NewRAMDirectory()
	writeFile(t, dir, "a", func(out store.IndexOutput) error {
		return WriteHeader(out, "FooBar", 5)
	})

	for _, c := range []struct {
		codec    string
		min, max int32
		check    func(error) bool
	}{
		{"Other", 0, 9, func(err error) bool { var e *CorruptIndexError; return errors.As(err, &e) }},
		{"FooBar", 6, 9, func(err error) bool { var e *IndexFormatTooOldError; return errors.As(err, &e) }},
		{"FooBar", 0, 4, func(err error) bool { var e *IndexFormatTooNewError; return errors.As(err, &e) }},
	} {
		in, err := dir.OpenInput("a", store.IO_CONTEXT_READ)
		if err != nil {
			t.Fatal(err)
		}
		_, err = CheckHeader(in, c.codec, c.min, c.max)
		if !c.check(err) {
			t.Errorf("%v [%v,%v]: unexpected error %v", c.codec, c.min, c.max, err)
		}
		in.Close()
	}
}

func TestIndexHeader(t *testing.T) {
	id := []byte("abcdefghijklmnop")
	dir := store.NewRAMDirectory()
	writeFile(t, dir, "a", func(out store.IndexOutput) error {
		return WriteIndexHeader(out, "Idx", 1, id, "3")
	})
	length, _ := dir.FileLength("a")
	assertEquals(t, int64(IndexHeaderLength("Idx", "3")), length)

	in, err := dir.OpenInput("a", store.IO_CONTEXT_READ)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	name, err := ReadHeaderName(in)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "Idx", name)
	in.ReadInt() // version
	got, err := CheckIndexHeaderID(in, id)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, string(id), string(got))
	err = CheckIndexHeaderSuffix(in, "4")
	var e *CorruptIndexError
	assertEquals(t, true, errors.As(err, &e))
}

func TestFooterMisplaced(t *testing.T) {
	dir := store.NewRAMDirectory()
	writeFile(t, dir, "a", func(out store.IndexOutput) error {
		if err := out.WriteInt(1); err != nil {
			return err
		}
		return WriteFooter(out)
	})
	in, err := dir.OpenChecksumInput("a", store.IO_CONTEXT_READ)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	// footer is 4 bytes further
	_, err = CheckFooter(in)
	var e *CorruptIndexError
	assertEquals(t, true, errors.As(err, &e))
}

func assertEquals(t *testing.T, a, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Expected '%v', but '%v'", a, b)
	}
}
