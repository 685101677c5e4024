package uu

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidCharacter indicates a byte outside the encoded alphabet.
	ErrInvalidCharacter = errors.New("uu: invalid data character")

	// ErrEmptyLine indicates a data line with no length character.
	ErrEmptyLine = errors.New("uu: found an empty data line")

	// ErrLineTooShort indicates a data line with fewer characters than its
	// declared length requires.
	ErrLineTooShort = errors.New("uu: data line too short")

	// ErrNoBeginMarker indicates the input ended before a begin line.
	ErrNoBeginMarker = errors.New("uu: no begin line found")

	// ErrMissingEndMarker indicates the input ended before the "end" line.
	ErrMissingEndMarker = errors.New(`uu: data did not end with "end"`)

	// ErrInvalidEncoding indicates an input line that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("uu: input is not valid text")
)

// CharacterError reports the offending byte of an invalid character.
type CharacterError struct {
	Char byte
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("uu: found a data character %d, which is not allowed", e.Char)
}

func (e *CharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// LineError attaches the 1-based input line number to a data error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v (line %d)", e.Err, e.Line)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadError wraps a failure to read input lines.
type ReadError struct {
	Line int // line being read when the failure happened
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("uu: read failed at line %d: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failure to write or flush decoded output.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("uu: write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
