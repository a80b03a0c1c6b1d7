package cpu

import "fmt"

// EffectiveAddress computes the address of a memory operand. The sum wraps
// at 16 bits like the real address adder.
func (c *CPU) EffectiveAddress(ea EffectiveAddress) uint32 {
	var addr uint16
	if ea.HasBase() {
		addr += c.R[ea.Base&7]
	}
	if ea.HasIndex() {
		addr += c.R[ea.Index&7]
	}
	if ea.HasDisp {
		addr += ea.Disp
	}
	return uint32(addr)
}

// GetOperand fetches the value of an operand.
// Memory reads one or two bytes depending on wide.
func (c *CPU) GetOperand(op Operand, wide bool) (uint16, error) {
	switch op.Kind {
	case OperandRegister:
		if !op.Wide {
			return 0, fmt.Errorf("read of byte register %s: %w", RegisterName(op.Reg, false), ErrUnimplemented)
		}
		return c.R[op.Reg&7], nil
	case OperandMemory:
		if !op.EA.Valid() {
			return 0, fmt.Errorf("empty effective address: %w", ErrInvariant)
		}
		addr := c.EffectiveAddress(op.EA)
		if wide {
			return c.ReadU16(addr)
		}
		b, err := c.ReadU8(addr)
		return uint16(b), err
	case OperandImmediate:
		return op.Imm, nil
	}
	return 0, fmt.Errorf("read of missing operand: %w", ErrInvariant)
}

// PutOperand writes a value to an operand.
func (c *CPU) PutOperand(op Operand, wide bool, value uint16) error {
	switch op.Kind {
	case OperandRegister:
		if !op.Wide {
			return fmt.Errorf("write to byte register %s: %w", RegisterName(op.Reg, false), ErrUnimplemented)
		}
		c.R[op.Reg&7] = value
		return nil
	case OperandMemory:
		if !op.EA.Valid() {
			return fmt.Errorf("empty effective address: %w", ErrInvariant)
		}
		addr := c.EffectiveAddress(op.EA)
		if wide {
			return c.WriteU16(addr, value)
		}
		return c.WriteU8(addr, uint8(value))
	case OperandImmediate:
		return fmt.Errorf("write to immediate %d: %w", op.Imm, ErrInvariant)
	}
	return fmt.Errorf("write to missing operand: %w", ErrInvariant)
}
