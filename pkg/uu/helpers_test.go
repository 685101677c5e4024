package uu

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/lmittmann/tint"
)

// encodeDocument uuencodes data the way traditional encoders do with the
// backtick convention: 45 bytes per line, then a zero length line and "end".
func encodeDocument(data []byte, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "begin 644 %s\n", name)
	for len(data) > 0 {
		n := min(45, len(data))
		chunk := data[:n]
		data = data[n:]

		b.WriteByte(encodeChar(byte(n)))
		for i := 0; i < n; i += 3 {
			var c [3]byte
			copy(c[:], chunk[i:])
			b.WriteByte(encodeChar(c[0] >> 2))
			b.WriteByte(encodeChar((c[0]<<4 | c[1]>>4) & 0x3f))
			b.WriteByte(encodeChar((c[1]<<2 | c[2]>>6) & 0x3f))
			b.WriteByte(encodeChar(c[2] & 0x3f))
		}
		b.WriteByte('\n')
	}
	b.WriteString("`\nend\n")
	return b.String()
}

func encodeChar(v byte) byte {
	if v == 0 {
		return '`'
	}
	return v + ' '
}

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(tint.NewHandler(t.Output(), &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05",
	}))
}
