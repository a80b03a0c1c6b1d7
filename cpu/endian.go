package cpu

import (
	"encoding/binary"
)

// WordsToBytes converts a slice of 16-bit words to a little-endian byte slice.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(out[i*2:], w)
	}
	return out
}

// SplitWord returns the low and high bytes of v.
func SplitWord(v uint16) (lo, hi byte) {
	return byte(v), byte(v >> 8)
}

// JoinWord combines a low and high byte.
func JoinWord(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}
