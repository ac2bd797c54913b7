package uart

import (
	"fmt"
	"unicode/utf8"
)

// EncodeASCII converts msg to its single-byte ASCII encoding.
func EncodeASCII(msg string) ([]byte, error) {
	out := make([]byte, 0, len(msg))
	for i, r := range msg {
		if r >= utf8.RuneSelf {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrNonASCII, r, i)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// FormatByte renders b the way the transmitter echoes it, e.g. 'H' -> 0x48.
func FormatByte(b byte) string {
	return fmt.Sprintf("0x%02x", b)
}
