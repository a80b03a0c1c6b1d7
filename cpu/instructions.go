package cpu

// OpCode identifies an operation. The first three values are sentinels and
// never come out of a successful decode.
type OpCode int

const (
	// OpInvalid marks a byte pattern no instruction form matches.
	OpInvalid OpCode = iota
	// OpInvalidAddress marks a lookup inside an instruction or between instructions.
	OpInvalidAddress
	// OpEndOfProgram marks a lookup at or past the end of the code.
	OpEndOfProgram

	OpMOV
	OpADD
	OpSUB
	OpCMP

	// Conditional jumps and loops, all with an 8-bit signed displacement.
	OpJO
	OpJNO
	OpJB
	OpJNB
	OpJE
	OpJNZ
	OpJBE
	OpJA
	OpJS
	OpJNS
	OpJP
	OpJNP
	OpJL
	OpJNL
	OpJLE
	OpJG
	OpLOOPNZ
	OpLOOPZ
	OpLOOP
	OpJCXZ

	opCount
)

var mnemonics = [opCount]string{
	OpInvalid:        "(invalid)",
	OpInvalidAddress: "(invalid address)",
	OpEndOfProgram:   "(end of program)",
	OpMOV:            "MOV",
	OpADD:            "ADD",
	OpSUB:            "SUB",
	OpCMP:            "CMP",
	OpJO:             "JO",
	OpJNO:            "JNO",
	OpJB:             "JB",
	OpJNB:            "JNB",
	OpJE:             "JE",
	OpJNZ:            "JNZ",
	OpJBE:            "JBE",
	OpJA:             "JA",
	OpJS:             "JS",
	OpJNS:            "JNS",
	OpJP:             "JP",
	OpJNP:            "JNP",
	OpJL:             "JL",
	OpJNL:            "JNL",
	OpJLE:            "JLE",
	OpJG:             "JG",
	OpLOOPNZ:         "LOOPNZ",
	OpLOOPZ:          "LOOPZ",
	OpLOOP:           "LOOP",
	OpJCXZ:           "JCXZ",
}

// String returns the mnemonic.
func (op OpCode) String() string {
	if op < 0 || op >= opCount {
		return "(unknown)"
	}
	return mnemonics[op]
}

// IsSentinel reports whether op is one of the lookup sentinels.
func (op OpCode) IsSentinel() bool {
	return op == OpInvalid || op == OpInvalidAddress || op == OpEndOfProgram
}

// IsJump reports whether op is a conditional jump or loop.
func (op OpCode) IsJump() bool {
	return op >= OpJO && op <= OpJCXZ
}

// HasTiming reports whether the cycle table covers op.
func (op OpCode) HasTiming() bool {
	return op == OpMOV || op == OpADD || op == OpSUB
}

// LookupOpCode finds an opcode by mnemonic.
func LookupOpCode(mn string) (OpCode, bool) {
	for op := OpMOV; op < opCount; op++ {
		if mnemonics[op] == mn {
			return op, true
		}
	}
	return OpInvalid, false
}

// Encodings, grouped by the number of significant leading bits.
const (
	// 4 bits: 1011 w reg
	EncMovImmReg = 0b1011

	// 6 bits: xxxxxx d w
	EncMovRegMem = 0b100010
	EncAddRegMem = 0b000000
	EncSubRegMem = 0b001010
	EncCmpRegMem = 0b001110
	EncImmRegMem = 0b100000 // s w, arithmetic selected by the reg field

	// 7 bits: xxxxxxx w
	EncMovImmRegMem = 0b1100011
	EncMovMemAcc    = 0b1010000
	EncMovAccMem    = 0b1010001
	EncAddMemAcc    = 0b0000010
	EncSubMemAcc    = 0b0010110
	EncCmpMemAcc    = 0b0011110
)

// Arithmetic sub-opcodes carried in the reg field of the immediate form.
const (
	SubADD uint8 = 0b000
	SubSUB uint8 = 0b101
	SubCMP uint8 = 0b111
)

// ArithmeticOp maps an immediate-form sub-opcode to its operation.
func ArithmeticOp(sub uint8) (OpCode, bool) {
	switch sub {
	case SubADD:
		return OpADD, true
	case SubSUB:
		return OpSUB, true
	case SubCMP:
		return OpCMP, true
	}
	return OpInvalid, false
}

// ArithmeticSub is the inverse of ArithmeticOp.
func ArithmeticSub(op OpCode) (uint8, bool) {
	switch op {
	case OpADD:
		return SubADD, true
	case OpSUB:
		return SubSUB, true
	case OpCMP:
		return SubCMP, true
	}
	return 0, false
}

// JumpOpcodes maps the single-byte jump and loop encodings to opcodes.
var JumpOpcodes = map[byte]OpCode{
	0x70: OpJO,
	0x71: OpJNO,
	0x72: OpJB,
	0x73: OpJNB,
	0x74: OpJE,
	0x75: OpJNZ,
	0x76: OpJBE,
	0x77: OpJA,
	0x78: OpJS,
	0x79: OpJNS,
	0x7A: OpJP,
	0x7B: OpJNP,
	0x7C: OpJL,
	0x7D: OpJNL,
	0x7E: OpJLE,
	0x7F: OpJG,
	0xE0: OpLOOPNZ,
	0xE1: OpLOOPZ,
	0xE2: OpLOOP,
	0xE3: OpJCXZ,
}

// JumpByte returns the encoding byte for a jump or loop opcode.
func JumpByte(op OpCode) (byte, bool) {
	for b, o := range JumpOpcodes {
		if o == op {
			return b, true
		}
	}
	return 0, false
}
