package cpu

import "fmt"

// opMOV handles every MOV form. Flags are not affected.
func (c *CPU) opMOV(inst *Instruction) error {
	value, err := c.GetOperand(inst.Src, inst.Wide)
	if err != nil {
		return fmt.Errorf("MOV failed to get source operand: %w", err)
	}

	err = c.PutOperand(inst.Dst, inst.Wide, value)
	if err != nil {
		return fmt.Errorf("MOV failed to put destination operand: %w", err)
	}
	return nil
}
