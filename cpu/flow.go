package cpu

import "fmt"

// opJcc handles the conditional jumps with defined semantics, JNZ and JE.
// IP already points past the instruction, so the displacement applies to it.
func (c *CPU) opJcc(inst *Instruction) error {
	if inst.Dst.Kind != OperandImmediate {
		return fmt.Errorf("%s without displacement: %w", inst.Op, ErrInvariant)
	}

	var taken bool
	switch inst.Op {
	case OpJNZ:
		taken = !c.Flags.Zero
	case OpJE:
		taken = c.Flags.Zero
	default:
		return fmt.Errorf("%s: %w", inst.Op, ErrUnimplemented)
	}

	if taken {
		target := int32(c.IP) + int32(inst.Displacement())
		if target < 0 || target > 0xFFFF {
			return fmt.Errorf("%s target %d is outside the code segment: %w", inst.Op, target, ErrInvalidAddress)
		}
		c.IP = uint16(target)
	}
	return nil
}
