package cpu

import (
	"bytes"
	"testing"
)

func TestEndianHelpers(t *testing.T) {
	got := WordsToBytes([]uint16{0x1234, 0xBEEF})
	if !bytes.Equal(got, []byte{0x34, 0x12, 0xEF, 0xBE}) {
		t.Errorf("WordsToBytes: % X", got)
	}

	lo, hi := SplitWord(0xABCD)
	if lo != 0xCD || hi != 0xAB {
		t.Errorf("SplitWord: %02X %02X", lo, hi)
	}
	if JoinWord(lo, hi) != 0xABCD {
		t.Errorf("JoinWord: %04X", JoinWord(lo, hi))
	}
}
