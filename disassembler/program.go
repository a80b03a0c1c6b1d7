package disassembler

import (
	"slices"

	"github.com/Urethramancer/i8086/cpu"
)

// Program holds the code bytes and the instructions decoded from them,
// keyed by the offset where each one starts.
type Program struct {
	code         []byte
	instructions map[uint32]cpu.Instruction
	offsets      []uint32
	stop         int // offset where decoding failed, -1 if it did not
}

// NewProgram creates an empty program over a private copy of code.
func NewProgram(code []byte) *Program {
	return &Program{
		code:         slices.Clone(code),
		instructions: make(map[uint32]cpu.Instruction, len(code)/2),
		stop:         -1,
	}
}

// Insert records an instruction under its start offset.
func (p *Program) Insert(inst cpu.Instruction) {
	if _, exists := p.instructions[inst.Offset]; !exists {
		p.offsets = append(p.offsets, inst.Offset)
	}
	p.instructions[inst.Offset] = inst
}

// InstructionAt looks up the instruction starting at offset. Offsets at or past
// the end give EndOfProgram; any other offset that is not a start gives InvalidAddress.
func (p *Program) InstructionAt(offset uint32) cpu.Instruction {
	if uint64(offset) >= uint64(len(p.code)) {
		return cpu.Sentinel(cpu.OpEndOfProgram, offset)
	}
	inst, ok := p.instructions[offset]
	if !ok {
		return cpu.Sentinel(cpu.OpInvalidAddress, offset)
	}
	return inst
}

// Instructions returns the decoded instructions in offset order.
func (p *Program) Instructions() []cpu.Instruction {
	offsets := slices.Clone(p.offsets)
	slices.Sort(offsets)
	out := make([]cpu.Instruction, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, p.instructions[off])
	}
	return out
}

// Len returns the number of decoded instructions.
func (p *Program) Len() int {
	return len(p.instructions)
}

// Size returns the length of the code in bytes.
func (p *Program) Size() int {
	return len(p.code)
}

// Bytes returns a copy of the code.
func (p *Program) Bytes() []byte {
	return slices.Clone(p.code)
}

// Undecoded returns the bytes from the offset where decoding stopped, or nil.
func (p *Program) Undecoded() []byte {
	if p.stop < 0 || p.stop >= len(p.code) {
		return nil
	}
	return slices.Clone(p.code[p.stop:])
}
