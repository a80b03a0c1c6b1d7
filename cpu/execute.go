package cpu

import "fmt"

// Program is the read side of a decoded program: instruction lookup by byte offset.
type Program interface {
	InstructionAt(offset uint32) Instruction
}

// Step fetches, dispatches and executes the instruction at IP.
// At the end of the program it returns the EndOfProgram sentinel and no error.
// Any halt is returned as a *Fault.
func (c *CPU) Step(p Program) (Instruction, error) {
	// Fetch
	inst := p.InstructionAt(uint32(c.IP))
	switch inst.Op {
	case OpEndOfProgram:
		return inst, nil
	case OpInvalidAddress:
		return inst, c.fault(inst, ErrInvalidAddress)
	case OpInvalid:
		return inst, c.fault(inst, ErrInvalidInstruction)
	}

	if c.StepLimit > 0 && c.Steps >= c.StepLimit {
		return inst, c.fault(inst, fmt.Errorf("%d instructions: %w", c.Steps, ErrStepLimit))
	}

	// IP is 16 bits; nothing past the first 64 KiB of code is reachable.
	next := uint32(c.IP) + inst.Size
	if next > 0xFFFF {
		return inst, c.fault(inst, fmt.Errorf("next instruction at %d is outside the code segment: %w", next, ErrInvalidAddress))
	}

	if c.Timing {
		if inst.Timing == nil {
			if !inst.Op.HasTiming() {
				return inst, c.fault(inst, fmt.Errorf("cycle table for %s: %w", inst.Op, ErrUnimplemented))
			}
			return inst, c.fault(inst, fmt.Errorf("%s has no timing estimate: %w", inst.Op, ErrInvariant))
		}
		c.Cycles += uint64(inst.Timing.Total())
	}

	// Branch displacements are relative to the next instruction.
	c.IP += uint16(inst.Size)

	// Decode
	handler, err := Dispatch(inst.Op)
	if err != nil {
		return inst, c.fault(inst, err)
	}

	// Execute
	err = handler(c, &inst)
	if err != nil {
		return inst, c.fault(inst, err)
	}

	c.Steps++
	return inst, nil
}

// Run executes until the end of the program or a halt.
// It returns nil only when the end of the program is reached.
func (c *CPU) Run(p Program) error {
	for {
		inst, err := c.Step(p)
		if err != nil {
			return err
		}
		if inst.Op == OpEndOfProgram {
			return nil
		}
	}
}

func (c *CPU) fault(inst Instruction, err error) *Fault {
	ip := uint16(inst.Offset)
	if inst.IsSentinel() {
		ip = c.IP
	}
	return &Fault{IP: ip, Inst: inst, Err: err}
}
