package vst3

import "fmt"

// TUID is the 16-byte identifier used for classes and interfaces.
type TUID [16]byte

// UID builds a TUID from the four 32-bit words used throughout the SDK
// headers. The in-memory byte order depends on the platform, see uidBytes.
func UID(l1, l2, l3, l4 uint32) TUID {
	return uidBytes(l1, l2, l3, l4)
}

// String formats the id as the 32 hex digit string hosts print for class ids.
func (t TUID) String() string {
	l1, l2, l3, l4 := t.Words()
	return fmt.Sprintf("%08X%08X%08X%08X", l1, l2, l3, l4)
}

// IsZero reports whether every byte of the id is zero.
func (t TUID) IsZero() bool {
	return t == TUID{}
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
