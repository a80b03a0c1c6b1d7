package cpu

import (
	"strconv"
	"strings"
)

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	// OperandNone is the zero value: no operand in this slot.
	OperandNone OperandKind = iota
	// OperandRegister is a register, word or byte.
	OperandRegister
	// OperandMemory is an effective address.
	OperandMemory
	// OperandImmediate is a 16-bit literal.
	OperandImmediate
)

// EffectiveAddress describes a memory operand. Base and Index are NoRegister
// when absent; Disp only counts when HasDisp is set.
type EffectiveAddress struct {
	Base    Register
	Index   Register
	Disp    uint16
	HasDisp bool
}

// HasBase reports whether a base register participates.
func (ea EffectiveAddress) HasBase() bool {
	return ea.Base != NoRegister
}

// HasIndex reports whether an index register participates.
func (ea EffectiveAddress) HasIndex() bool {
	return ea.Index != NoRegister
}

// Valid reports whether at least one term is present.
func (ea EffectiveAddress) Valid() bool {
	return ea.HasBase() || ea.HasIndex() || ea.HasDisp
}

// IsDirect reports whether the address is a bare displacement.
func (ea EffectiveAddress) IsDirect() bool {
	return !ea.HasBase() && !ea.HasIndex() && ea.HasDisp
}

// String renders the address as [BASE + INDEX + disp].
func (ea EffectiveAddress) String() string {
	var terms []string
	if ea.HasBase() {
		terms = append(terms, ea.Base.String())
	}
	if ea.HasIndex() {
		terms = append(terms, ea.Index.String())
	}
	if ea.HasDisp {
		terms = append(terms, strconv.Itoa(int(ea.Disp)))
	}
	return "[" + strings.Join(terms, " + ") + "]"
}

// Operand is one side of an instruction.
type Operand struct {
	Kind OperandKind
	Reg  Register
	Wide bool
	EA   EffectiveAddress
	Imm  uint16
}

// RegisterOperand builds a register operand.
func RegisterOperand(r Register, wide bool) Operand {
	return Operand{Kind: OperandRegister, Reg: r, Wide: wide}
}

// MemoryOperand builds a memory operand.
func MemoryOperand(ea EffectiveAddress) Operand {
	return Operand{Kind: OperandMemory, EA: ea}
}

// ImmediateOperand builds an immediate operand.
func ImmediateOperand(v uint16) Operand {
	return Operand{Kind: OperandImmediate, Imm: v}
}

// String renders the operand without size keywords.
func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return RegisterName(o.Reg, o.Wide)
	case OperandMemory:
		return o.EA.String()
	case OperandImmediate:
		return strconv.Itoa(int(o.Imm))
	}
	return ""
}

// Timing is the cycle estimate attached to an instruction at decode time.
type Timing struct {
	Base uint32
	EA   uint32
}

// Total cycles.
func (t Timing) Total() uint32 {
	return t.Base + t.EA
}

// Instruction is a decoded instruction. Sentinel values carry no operands.
type Instruction struct {
	Op     OpCode
	Dst    Operand
	Src    Operand
	Wide   bool
	Offset uint32
	Size   uint32
	Text   string
	Timing *Timing
}

// Sentinel builds a sentinel instruction for the given offset.
func Sentinel(op OpCode, offset uint32) Instruction {
	return Instruction{Op: op, Offset: offset, Text: op.String()}
}

// IsSentinel reports whether the instruction is a sentinel.
func (inst Instruction) IsSentinel() bool {
	return inst.Op.IsSentinel()
}

// Displacement returns the signed jump displacement.
func (inst Instruction) Displacement() int8 {
	return int8(inst.Dst.Imm)
}

// Target returns the branch target: the offset after the instruction plus the displacement.
func (inst Instruction) Target() uint32 {
	return uint32(int64(inst.Offset) + int64(inst.Size) + int64(inst.Displacement()))
}
