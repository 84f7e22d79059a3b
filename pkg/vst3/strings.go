package vst3

import (
	"strings"
	"unicode/utf16"
)

// String8 converts a fixed-length narrow buffer to a string, stopping at the
// first NUL. Invalid UTF-8 is replaced rather than rejected.
func String8(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			buf = buf[:i]
			break
		}
	}
	return strings.ToValidUTF8(string(buf), "�")
}

// String16 converts a fixed-length UTF-16 buffer to a string, stopping at the
// first NUL unit. Unpaired surrogates become U+FFFD.
func String16(buf []uint16) string {
	for i, u := range buf {
		if u == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// PutString16 writes s into dst as NUL-terminated UTF-16, truncating so the
// terminator always fits. It returns the number of units written before it.
func PutString16(dst []uint16, s string) int {
	if len(dst) == 0 {
		return 0
	}
	units := utf16.Encode([]rune(s))
	n := min(len(units), len(dst)-1)
	copy(dst, units[:n])
	dst[n] = 0
	return n
}
