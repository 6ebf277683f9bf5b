package ngram

import (
	"errors"
	"fmt"
)

var (
	// ErrData indicates a corpus source could not be opened or read.
	ErrData = errors.New("corpus unreadable")
	// ErrParse indicates a corpus line is not of the form "GRAM COUNT".
	ErrParse = errors.New("corpus malformed")
)

// DataError reports a corpus file that could not be read. Path is absolute.
type DataError struct {
	Path string
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("cannot read corpus %s: %v", e.Path, e.Err)
}

func (e *DataError) Unwrap() []error {
	return []error{ErrData, e.Err}
}

// ParseError reports a corpus line that could not be parsed.
type ParseError struct {
	Path   string // empty when parsing an anonymous reader
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.where(), e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s (%q)", e.where(), e.Line, e.Reason, e.Text)
}

func (e *ParseError) where() string {
	if e.Path == "" {
		return "corpus"
	}
	return e.Path
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
