package cpu

import (
	"bytes"
	"io"
)

// MemorySize is the size of the flat address space.
const MemorySize = 1 << 20

// Flags holds the modelled subset of the flags register.
type Flags struct {
	// Zero is set when the last arithmetic result was zero.
	Zero bool
	// Sign is set when the last arithmetic result had its top bit set.
	Sign bool
}

// String renders set flags as letters, e.g. "ZS".
func (f Flags) String() string {
	s := ""
	if f.Zero {
		s += "Z"
	}
	if f.Sign {
		s += "S"
	}
	return s
}

// CPU registers, flags and memory.
type CPU struct {
	// R holds the word registers, indexed by register code (AX, CX, DX, BX, SP, BP, SI, DI).
	R [8]uint16
	// Flags is the flags register.
	Flags Flags
	// IP is the instruction pointer, a byte offset into the program.
	IP uint16

	// Mem is the flat address space.
	Mem []byte

	// Timing enables cycle accounting.
	Timing bool
	// Cycles accumulated while Timing is on.
	Cycles uint64

	// StepLimit halts the run after that many instructions when non-zero.
	StepLimit uint64
	// Steps counts executed instructions.
	Steps uint64
}

// New creates a CPU with zeroed registers and memory.
func New() *CPU {
	return &CPU{
		Mem: make([]byte, MemorySize),
	}
}

// Reset clears registers, flags, counters and memory.
func (c *CPU) Reset() {
	c.R = [8]uint16{}
	c.Flags = Flags{}
	c.IP = 0
	c.Cycles = 0
	c.Steps = 0
	clear(c.Mem)
}

// Register returns a word register.
func (c *CPU) Register(r Register) uint16 {
	return c.R[r&7]
}

// SetRegister writes a word register.
func (c *CPU) SetRegister(r Register, v uint16) {
	c.R[r&7] = v
}

// MemoryReader returns a read-only view of the whole address space.
func (c *CPU) MemoryReader() io.Reader {
	return bytes.NewReader(c.Mem)
}
