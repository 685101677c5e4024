package uu

import (
	"bufio"
	"io"
	"log/slog"
)

// State is the position of the decoder within a uuencoded document.
type State int

const (
	StateScanning    State = iota // looking for the begin line
	StateReadingData              // decoding data lines until "end"
	StateDone                     // "end" seen, output flushed
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateReadingData:
		return "reading-data"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result summarizes a completed decode.
type Result struct {
	Lines int   // input lines consumed, including the begin and end lines
	Bytes int64 // decoded bytes written
}

// Flusher is implemented by buffered writers such as *bufio.Writer.
// Decode flushes a Flusher after the "end" line, before reporting success.
type Flusher interface {
	Flush() error
}

// Decoder reads a uuencoded document from an io.Reader, one line at a time.
//
// Lines may end in "\n" or "\r\n". The decoder reads no further than the
// "end" line, but the underlying bufio.Scanner may have buffered past it.
type Decoder struct {
	sc            *bufio.Scanner
	maxLineLength int
	m             machine
}

// NewDecoder creates a decoder reading from r.
//
// Example:
//
//	dec := uu.NewDecoder(os.Stdin, uu.WithLogger(logger))
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	cfg := newConfig(opts)

	sc := bufio.NewScanner(r)
	// Room for a "\r\n" terminator; Decode checks the stripped length.
	sc.Buffer(make([]byte, 0, min(4096, cfg.maxLineLength+2)), cfg.maxLineLength+2)

	return &Decoder{
		sc:            sc,
		maxLineLength: cfg.maxLineLength,
		m:             machine{logger: cfg.logger},
	}
}

// State returns the current decoder state.
func (d *Decoder) State() State {
	return d.m.state
}

// machine is the scan/decode state machine shared by Decoder and DecodeLines.
type machine struct {
	state  State
	line   int
	bytes  int64
	buf    []byte
	logger *slog.Logger
}

func (m *machine) result() Result {
	return Result{Lines: m.line, Bytes: m.bytes}
}
