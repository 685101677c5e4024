package uu

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
)

// Property: encode(x) -> decode() == x (round-trip)
func TestProperty_RoundTrip(t *testing.T) {
	property := func(data []byte) bool {
		decoded, err := DecodeString(encodeDocument(data, "data.bin"))
		if err != nil {
			t.Logf("decode failed: %v", err)
			return false
		}
		return bytes.Equal(decoded, data)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: every line of the body decodes independently to its own chunk
func TestProperty_LinesDecodeIndependently(t *testing.T) {
	property := func(data []byte) bool {
		doc := encodeDocument(data, "data.bin")
		lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
		body := lines[1 : len(lines)-1]

		var got []byte
		for _, line := range body {
			var err error
			if got, err = DecodeLine(got, line); err != nil {
				return false
			}
		}
		return bytes.Equal(got, data)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: decoded length equals the sum of the declared line lengths
func TestProperty_DeclaredLength(t *testing.T) {
	property := func(line []byte) bool {
		if len(line) == 0 {
			return true
		}
		s := string(line)
		out, err := DecodeLine(nil, s)
		if err != nil {
			return true // only successful decodes are constrained
		}
		length, _ := ByteValue(line[0])
		return len(out) == int(length)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: text before the begin line never changes the result
func TestProperty_PreambleIgnored(t *testing.T) {
	property := func(preamble []string, data []byte) bool {
		var b strings.Builder
		for _, p := range preamble {
			p = strings.Map(func(r rune) rune {
				if r == '\n' || r == '\r' {
					return ' '
				}
				return r
			}, p)
			if IsBeginLine(p) {
				continue
			}
			b.WriteString(p)
			b.WriteByte('\n')
		}
		b.WriteString(encodeDocument(data, "x"))

		decoded, err := DecodeString(b.String())
		return err == nil && bytes.Equal(decoded, data)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestRandomSizesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bts := make([]byte, 2049)
	rng.Read(bts)

	for _, size := range []int{0, 1, 2, 3, 4, 44, 45, 46, 89, 90, 91, 135, 1000, 2049} {
		in := bts[:size]
		got, err := DecodeString(encodeDocument(in, "random.bin"))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !bytes.Equal(in, got) {
			for i := 0; i < len(in) && i < len(got); i++ {
				if in[i] != got[i] {
					t.Fatal("first mismatched byte:", i, "/", size)
				}
			}
			t.Fatalf("size %d: got %d bytes", size, len(got))
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data := make([]byte, 1024*1024)
	rand.New(rand.NewSource(1)).Read(data)
	doc := encodeDocument(data, "bench.bin")

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		var buf bytes.Buffer
		if _, err := NewDecoder(strings.NewReader(doc)).Decode(&buf); err != nil {
			b.Fatal(err)
		}
	}
}
