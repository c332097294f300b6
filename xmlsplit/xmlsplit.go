// Package xmlsplit streams elements of a given name out of a large XML
// document, e.g. every song of a <songs> collection, without parsing the
// whole document.
package xmlsplit

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	DefaultBufferSize = 1 << 16 // soft limit, start looking for elements
	DefaultMaxSize    = 1 << 24 // hard limit for a single element
)

var (
	ErrElementTooLarge = errors.New("element exceeds max size")
	ErrInvalidSplitter = errors.New("invalid splitter")
)

// Splitter is a bufio.SplitFunc source yielding complete elements of one
// name, including nested elements of the same name.
type Splitter struct {
	name       string
	bufferSize int
	maxSize    int
	pending    []byte
}

// New returns a splitter for elements called name.
func New(name string, bufferSize, maxSize int) (*Splitter, error) {
	if name == "" || bufferSize < 0 || maxSize < bufferSize {
		return nil, ErrInvalidSplitter
	}
	return &Splitter{name: name, bufferSize: bufferSize, maxSize: maxSize}, nil
}

// Split implements bufio.SplitFunc.
func (s *Splitter) Split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(s.pending) > 0 {
		start, end := nextElement(string(s.pending), s.name)
		switch {
		case start == -1:
			s.pending = nil
		case end == -1:
			if atEOF {
				s.pending = nil
				return len(data), nil, io.EOF
			}
			s.pending = append(s.pending, data...)
			if len(s.pending) > s.maxSize {
				return 0, nil, ErrElementTooLarge
			}
			return len(data), nil, nil
		default:
			token = s.pending[start:end]
			s.pending = s.pending[end:]
			return 0, token, nil
		}
	}
	if atEOF {
		if len(data) == 0 {
			return 0, nil, io.EOF
		}
		start, end := nextElement(string(data), s.name)
		if start == -1 || end == -1 {
			return len(data), nil, io.EOF
		}
		if end < len(data) {
			s.pending = append([]byte(nil), data[end:]...)
		}
		return len(data), data[start:end], nil
	}
	s.pending = append(s.pending, data...)
	if len(s.pending) < s.bufferSize {
		return len(data), nil, nil
	}
	start, end := nextElement(string(s.pending), s.name)
	switch {
	case start == -1:
		s.pending = nil
		return len(data), nil, nil
	case end == -1:
		if len(s.pending) > s.maxSize {
			return len(data), nil, ErrElementTooLarge
		}
		return len(data), nil, nil
	}
	token = s.pending[start:end]
	s.pending = s.pending[end:]
	return len(data), token, nil
}

func isNameEnd(ch byte) bool {
	switch ch {
	case '>', ' ', '/', '\n', '\t', '\r':
		return true
	}
	return false
}

// isOpenTag reports whether an opening tag for the element starts at i,
// "<song>" or "<song " but not "<songs>".
func isOpenTag(input string, i, n int) bool {
	return i+n >= len(input) || isNameEnd(input[i+n])
}

// nextElement returns the byte offsets of the first complete element
// called name, or -1 for start and end if there is none. If an element
// starts but does not end within input, end is -1.
func nextElement(input, name string) (start, end int) {
	var (
		openTag  = "<" + name
		closeTag = "</" + name + ">"
		i        = 0
	)
	for i < len(input) {
		k := strings.Index(input[i:], openTag)
		if k == -1 {
			return -1, -1
		}
		start = i + k
		if !isOpenTag(input, start, len(openTag)) {
			i = start + 1
			continue
		}
		gt := strings.Index(input[start:], ">")
		if gt == -1 {
			return start, -1
		}
		gt += start
		if input[gt-1] == '/' {
			return start, gt + 1
		}
		depth, j := 1, gt+1
		for j < len(input) && depth > 0 {
			nextOpen := strings.Index(input[j:], openTag)
			nextClose := strings.Index(input[j:], closeTag)
			if nextClose == -1 {
				return start, -1
			}
			if nextOpen != -1 && nextOpen < nextClose {
				if isOpenTag(input, j+nextOpen, len(openTag)) {
					depth++
				}
				j += nextOpen + 1
				continue
			}
			depth--
			j += nextClose + len(closeTag)
			if depth == 0 {
				return start, j
			}
		}
		i = gt + 1
	}
	return -1, -1
}

// Each calls fn with every element called name found in r, in document
// order. The slice passed to fn is only valid during the call.
func Each(r io.Reader, name string, fn func(element []byte) error) error {
	s, err := New(name, DefaultBufferSize, DefaultMaxSize)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, DefaultBufferSize), DefaultMaxSize)
	scanner.Split(s.Split)
	for scanner.Scan() {
		if err := fn(scanner.Bytes()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
