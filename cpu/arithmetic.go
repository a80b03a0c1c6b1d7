package cpu

import "fmt"

// opArith handles ADD, SUB and CMP. CMP sets flags and discards the result.
func (c *CPU) opArith(inst *Instruction) error {
	if inst.Dst.Kind == OperandImmediate {
		return fmt.Errorf("%s into an immediate: %w", inst.Op, ErrInvariant)
	}

	dst, err := c.GetOperand(inst.Dst, inst.Wide)
	if err != nil {
		return fmt.Errorf("%s failed to get destination operand: %w", inst.Op, err)
	}
	src, err := c.GetOperand(inst.Src, inst.Wide)
	if err != nil {
		return fmt.Errorf("%s failed to get source operand: %w", inst.Op, err)
	}

	// Two's complement arithmetic wraps at 16 bits; the signed and unsigned results share bits.
	var result uint16
	switch inst.Op {
	case OpADD:
		result = dst + src
	case OpSUB, OpCMP:
		result = dst - src
	default:
		return fmt.Errorf("%s routed to arithmetic: %w", inst.Op, ErrInvariant)
	}
	if !inst.Wide {
		result &= 0xFF
	}
	c.setZS(result, inst.Wide)

	if inst.Op == OpCMP {
		return nil
	}
	if err := c.PutOperand(inst.Dst, inst.Wide, result); err != nil {
		return fmt.Errorf("%s failed to put result: %w", inst.Op, err)
	}
	return nil
}
