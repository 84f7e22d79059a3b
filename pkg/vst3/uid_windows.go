package vst3

// COM-compatible layout: the first word is little endian and the two
// halves of the second word are swapped little endian halves.
func uidBytes(l1, l2, l3, l4 uint32) TUID {
	return TUID{
		byte(l1), byte(l1 >> 8), byte(l1 >> 16), byte(l1 >> 24),
		byte(l2 >> 16), byte(l2 >> 24), byte(l2), byte(l2 >> 8),
		byte(l3 >> 24), byte(l3 >> 16), byte(l3 >> 8), byte(l3),
		byte(l4 >> 24), byte(l4 >> 16), byte(l4 >> 8), byte(l4),
	}
}

// Words returns the four 32-bit words the id was built from.
func (t TUID) Words() (l1, l2, l3, l4 uint32) {
	l1 = uint32(t[0]) | uint32(t[1])<<8 | uint32(t[2])<<16 | uint32(t[3])<<24
	l2 = uint32(t[5])<<24 | uint32(t[4])<<16 | uint32(t[7])<<8 | uint32(t[6])
	return l1, l2, be32(t[8:12]), be32(t[12:16])
}
