//go:build !windows

package vst3

func uidBytes(l1, l2, l3, l4 uint32) TUID {
	return TUID{
		byte(l1 >> 24), byte(l1 >> 16), byte(l1 >> 8), byte(l1),
		byte(l2 >> 24), byte(l2 >> 16), byte(l2 >> 8), byte(l2),
		byte(l3 >> 24), byte(l3 >> 16), byte(l3 >> 8), byte(l3),
		byte(l4 >> 24), byte(l4 >> 16), byte(l4 >> 8), byte(l4),
	}
}

// Words returns the four 32-bit words the id was built from.
func (t TUID) Words() (l1, l2, l3, l4 uint32) {
	return be32(t[0:4]), be32(t[4:8]), be32(t[8:12]), be32(t[12:16])
}
