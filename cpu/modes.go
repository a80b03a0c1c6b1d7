package cpu

// Addressing modes (2-bit mod field of the second instruction byte).
const (
	// 00: Memory, no displacement. r/m 110 is the direct address exception.
	ModeMem uint8 = 0

	// 01: Memory with 8-bit displacement.
	ModeMemDisp8 uint8 = 1

	// 10: Memory with 16-bit displacement.
	ModeMemDisp16 uint8 = 2

	// 11: Register direct.
	ModeReg uint8 = 3
)

// r/m field values when mod selects memory.
const (
	RMBXSI uint8 = 0 // [BX + SI]
	RMBXDI uint8 = 1 // [BX + DI]
	RMBPSI uint8 = 2 // [BP + SI]
	RMBPDI uint8 = 3 // [BP + DI]
	RMSI   uint8 = 4 // [SI]
	RMDI   uint8 = 5 // [DI]
	RMBP   uint8 = 6 // [BP], or a direct address under ModeMem
	RMBX   uint8 = 7 // [BX]
)

// Register is a 3-bit register field. Word and byte registers share codes.
type Register uint8

// Word registers.
const (
	AX Register = 0
	CX Register = 1
	DX Register = 2
	BX Register = 3
	SP Register = 4
	BP Register = 5
	SI Register = 6
	DI Register = 7
)

// Byte registers.
const (
	AL Register = 0
	CL Register = 1
	DL Register = 2
	BL Register = 3
	AH Register = 4
	CH Register = 5
	DH Register = 6
	BH Register = 7
)

// NoRegister marks an absent base or index register in an effective address.
const NoRegister Register = 0xFF

var wordRegisterNames = [8]string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"}
var byteRegisterNames = [8]string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"}

// RegisterName returns the assembler name of a register code.
func RegisterName(r Register, wide bool) string {
	if r > DI {
		return "INVALID_REGISTER"
	}
	if wide {
		return wordRegisterNames[r]
	}
	return byteRegisterNames[r]
}

// LookupRegister finds a register by name, reporting its width.
func LookupRegister(name string) (Register, bool, bool) {
	for i, n := range wordRegisterNames {
		if n == name {
			return Register(i), true, true
		}
	}
	for i, n := range byteRegisterNames {
		if n == name {
			return Register(i), false, true
		}
	}
	return NoRegister, false, false
}

// String returns the word-sized name.
func (r Register) String() string {
	return RegisterName(r, true)
}
