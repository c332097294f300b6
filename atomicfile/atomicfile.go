// Package atomicfile writes output files through a temporary file in the
// same directory, renamed into place on Close. Readers never see a half
// written file and reruns replace outputs in full.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is an output file in progress.
type File struct {
	*os.File
	name   string
	closed bool
}

// Create starts writing to name, creating parent directories as needed.
func Create(name string) (*File, error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(name)+".wip-*")
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: name}, nil
}

// Close closes the temporary file and renames it to its final name.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Chmod(f.File.Name(), 0644); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return os.Rename(f.File.Name(), f.name)
}

// Abort discards the temporary file, the final file is left untouched.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.File.Close()
	return os.Remove(f.File.Name())
}

// WriteFile writes data to name atomically.
func WriteFile(name string, data []byte) error {
	f, err := Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
