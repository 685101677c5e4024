package uu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

const endLine = "end"

// beginLine matches "begin", a space, a three digit mode and a space.
// The file name after it is not part of the match.
var beginLine = regexp.MustCompile(`^begin [0-9]{3} `)

// ByteValue returns the 6-bit value of an encoded character.
//
// The backtick maps to 0 and every character from '!' (33) to '~' (126)
// maps to its code minus 32. Any other byte, including the space, returns a
// *CharacterError.
func ByteValue(c byte) (byte, error) {
	switch {
	case c == '`':
		return 0, nil
	case c > ' ' && c < 127:
		return c - ' ', nil
	default:
		return 0, &CharacterError{Char: c}
	}
}

// IsBeginLine reports whether line starts an encoded section.
func IsBeginLine(line string) bool {
	return beginLine.MatchString(line)
}

// DecodeLine decodes one data line and appends the decoded bytes to dst.
//
// The first character gives the number of bytes the line decodes to. Only
// as many characters as that count requires are read; the rest of the line
// is ignored. On error the returned slice holds the bytes decoded before
// the failure.
func DecodeLine(dst []byte, line string) ([]byte, error) {
	if len(line) == 0 {
		return dst, ErrEmptyLine
	}

	length, err := ByteValue(line[0])
	if err != nil {
		return dst, err
	}

	var acc uint32
	var bits uint
	pos := 1
	for range length {
		for bits < 8 {
			if pos >= len(line) {
				return dst, ErrLineTooShort
			}
			v, err := ByteValue(line[pos])
			if err != nil {
				return dst, err
			}
			pos++
			acc = acc<<6 | uint32(v)
			bits += 6
		}
		bits -= 8
		dst = append(dst, byte(acc>>bits))
	}

	return dst, nil
}

// Decode decodes the first encoded section of the input and writes the
// decoded bytes to w as each line is decoded.
//
// If w implements Flusher it is flushed when the "end" line is reached.
// Decode returns ErrNoBeginMarker or ErrMissingEndMarker when the input ends
// early. After a successful decode further calls return the same Result
// without reading.
func (d *Decoder) Decode(w io.Writer) (Result, error) {
	if d.m.state == StateDone {
		return d.m.result(), nil
	}

	for d.sc.Scan() {
		line := d.sc.Text()
		if len(line) > d.maxLineLength {
			return d.m.result(), d.tooLong()
		}
		if !utf8.ValidString(line) {
			return d.m.result(), &ReadError{Line: d.m.line + 1, Err: ErrInvalidEncoding}
		}

		if err := d.m.feed(line, w); err != nil {
			return d.m.result(), err
		}
		if d.m.state == StateDone {
			return d.m.result(), nil
		}
	}

	if err := d.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return d.m.result(), d.tooLong()
		}
		return d.m.result(), &ReadError{Line: d.m.line + 1, Err: err}
	}

	return d.m.result(), d.m.finish()
}

func (d *Decoder) tooLong() error {
	return &ReadError{
		Line: d.m.line + 1,
		Err:  fmt.Errorf("line longer than %d bytes: %w", d.maxLineLength, bufio.ErrTooLong),
	}
}

// DecodeLines runs the decoder over lines that have already been split,
// without their line terminators.
func DecodeLines(lines iter.Seq[string], w io.Writer, opts ...Option) (Result, error) {
	cfg := newConfig(opts)
	m := machine{logger: cfg.logger}

	for line := range lines {
		if err := m.feed(line, w); err != nil {
			return m.result(), err
		}
		if m.state == StateDone {
			return m.result(), nil
		}
	}

	return m.result(), m.finish()
}

// DecodeString decodes a complete uuencoded document held in memory.
func DecodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewDecoder(strings.NewReader(s)).Decode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// feed advances the state machine by one input line.
func (m *machine) feed(line string, w io.Writer) error {
	m.line++

	switch m.state {
	case StateScanning:
		if IsBeginLine(line) {
			m.logger.Debug("found begin line", "line", m.line)
			m.state = StateReadingData
		}

	case StateReadingData:
		if line == endLine {
			if f, ok := w.(Flusher); ok {
				if err := f.Flush(); err != nil {
					return &WriteError{Err: err}
				}
			}
			m.state = StateDone
			m.logger.Debug("found end line", "line", m.line, "bytes", m.bytes)
			return nil
		}

		var decodeErr error
		m.buf, decodeErr = DecodeLine(m.buf[:0], line)
		if len(m.buf) > 0 {
			n, err := w.Write(m.buf)
			m.bytes += int64(n)
			if err != nil {
				return &WriteError{Err: err}
			}
		}
		if decodeErr != nil {
			return &LineError{Line: m.line, Err: decodeErr}
		}
	}

	return nil
}

// finish reports why the input ran out before the end line.
func (m *machine) finish() error {
	switch m.state {
	case StateScanning:
		return ErrNoBeginMarker
	case StateReadingData:
		return ErrMissingEndMarker
	default:
		return nil
	}
}
