// Package xio opens input files, decompressing .zst and .gz files on the
// fly.
package xio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// OpenError is returned when an input cannot be opened or its compression
// header cannot be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a file and returns a reader, detecting compression from the
// file name suffix.
func Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &OpenError{Path: filename, Err: err}
	}
	rc, err := Decompress(f, filename)
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: filename, Err: err}
	}
	return rc, nil
}

// Decompress wraps r according to the suffix of name. Closing the result
// closes r, if it is a closer.
func Decompress(r io.Reader, name string) (io.ReadCloser, error) {
	var closers []func() error
	if c, ok := r.(io.Closer); ok {
		closers = append(closers, c.Close)
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: append([]func() error{zr.Close}, closers...)}, nil
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		closeZstd := func() error { zr.Close(); return nil }
		return &readCloser{Reader: zr, closers: append([]func() error{closeZstd}, closers...)}, nil
	default:
		return &readCloser{Reader: r, closers: closers}, nil
	}
}

// Base returns the file name without directory and without compression
// and format suffixes, "in/telugu.txt.zst" yields "telugu".
func Base(filename string) string {
	name := filepath.Base(filename)
	for _, ext := range []string{".zst", ".gz"} {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ReadFile reads a whole, possibly compressed, file.
func ReadFile(filename string) ([]byte, error) {
	rc, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
