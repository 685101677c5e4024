// Package uu implements decoding of uuencoded text.
//
// A uuencoded document is a sequence of lines. Decoding skips everything up
// to a begin line, decodes each following line as a data record, and stops
// at a line reading exactly "end":
//
//	begin 644 test.txt
//	+:&AU<&5R<PH`
//	`
//	end
//
// The begin line is the literal "begin ", three digits (the file mode) and
// a space. The mode and the file name that follows it are not interpreted.
//
// # Data lines
//
// The first character of a data line encodes how many bytes the line
// decodes to. Every character maps to a 6-bit value: the backtick is 0 and
// any character from '!' to '~' is its code minus 32. The values are packed
// most significant bit first into output bytes. Characters left on a line
// after the declared number of bytes has been produced are ignored.
//
// # Basic Usage
//
// Decoding a stream:
//
//	dec := uu.NewDecoder(r, uu.WithLogger(logger))
//	res, err := dec.Decode(w)
//
// Decoding lines that are already split:
//
//	res, err := uu.DecodeLines(slices.Values(lines), w)
//
// Decoding a single data line:
//
//	out, err := uu.DecodeLine(nil, "#0V%T")
//
// Only the first encoded section of the input is decoded. Anything after
// the "end" line is never read.
//
// # Errors
//
// Data errors match one of ErrInvalidCharacter, ErrEmptyLine,
// ErrLineTooShort, ErrNoBeginMarker or ErrMissingEndMarker under errors.Is.
// Failures of the underlying reader or writer are reported as *ReadError and
// *WriteError so they are never mistaken for malformed input.
package uu
