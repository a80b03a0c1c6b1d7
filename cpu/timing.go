package cpu

import "fmt"

// EstimateTiming returns the base and effective-address cycle cost of an
// instruction form, after the 8086 Family User's Manual timing tables.
// Forms without a table entry (CMP, jumps and loops) return ErrUnimplemented.
func EstimateTiming(op OpCode, dst, src Operand) (*Timing, error) {
	var base uint32
	switch op {
	case OpADD, OpSUB:
		switch {
		case dst.Kind == OperandRegister && src.Kind == OperandRegister:
			base = 3
		case dst.Kind == OperandRegister && src.Kind == OperandMemory:
			base = 9
		case dst.Kind == OperandMemory && src.Kind == OperandRegister:
			base = 16
		case dst.Kind == OperandMemory && src.Kind == OperandImmediate:
			base = 17
		case dst.Kind == OperandRegister && src.Kind == OperandImmediate:
			base = 4
		default:
			return nil, fmt.Errorf("timing %s with operands %d,%d: %w", op, dst.Kind, src.Kind, ErrInvariant)
		}

	case OpMOV:
		switch {
		// Accumulator to/from direct address has its own encoding and no EA cost.
		case dst.Kind == OperandMemory && src.Kind == OperandRegister && src.Reg == AX && dst.EA.IsDirect():
			return &Timing{Base: 10}, nil
		case dst.Kind == OperandRegister && src.Kind == OperandMemory && dst.Reg == AX && src.EA.IsDirect():
			return &Timing{Base: 10}, nil
		case dst.Kind == OperandRegister && src.Kind == OperandRegister:
			base = 2
		case dst.Kind == OperandRegister && src.Kind == OperandMemory:
			base = 8
		case dst.Kind == OperandMemory && src.Kind == OperandRegister:
			base = 9
		case dst.Kind == OperandRegister && src.Kind == OperandImmediate:
			base = 4
		case dst.Kind == OperandMemory && src.Kind == OperandImmediate:
			base = 10
		default:
			return nil, fmt.Errorf("timing %s with operands %d,%d: %w", op, dst.Kind, src.Kind, ErrInvariant)
		}

	case OpCMP, OpJO, OpJNO, OpJB, OpJNB, OpJE, OpJNZ, OpJBE, OpJA, OpJS, OpJNS,
		OpJP, OpJNP, OpJL, OpJNL, OpJLE, OpJG, OpLOOPNZ, OpLOOPZ, OpLOOP, OpJCXZ:
		return nil, fmt.Errorf("timing for %s: %w", op, ErrUnimplemented)

	default:
		return nil, fmt.Errorf("timing for sentinel %s: %w", op, ErrInvariant)
	}

	ea, err := operandEACycles(dst)
	if err != nil {
		return nil, err
	}
	srcEA, err := operandEACycles(src)
	if err != nil {
		return nil, err
	}
	return &Timing{Base: base, EA: ea + srcEA}, nil
}

// operandEACycles is the effective-address surcharge for one operand.
// A displacement of zero counts as no displacement.
func operandEACycles(o Operand) (uint32, error) {
	if o.Kind != OperandMemory {
		return 0, nil
	}

	ea := o.EA
	disp := ea.HasDisp && ea.Disp > 0
	base, index := ea.HasBase(), ea.HasIndex()

	switch {
	case disp && !base && !index:
		return 6, nil
	case !disp && base != index:
		return 5, nil
	case disp && base != index:
		return 9, nil
	case base && index:
		cheap, err := cheapPair(ea.Base, ea.Index)
		if err != nil {
			return 0, err
		}
		switch {
		case !disp && cheap:
			return 7, nil
		case !disp:
			return 8, nil
		case cheap:
			return 11, nil
		default:
			return 12, nil
		}
	}
	return 0, nil
}

// cheapPair reports whether a base/index pairing is one of the faster two.
func cheapPair(base, index Register) (bool, error) {
	switch {
	case base == BP && index == DI, base == BX && index == SI:
		return true, nil
	case base == BP && index == SI, base == BX && index == DI:
		return false, nil
	}
	return false, fmt.Errorf("effective address pairing %s+%s: %w", base, index, ErrInvariant)
}
