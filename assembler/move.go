package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// assembleMove handles all MOV forms.
func assembleMove(ops []Operand) ([]byte, error) {
	if len(ops) != 2 {
		return nil, fmt.Errorf("MOV requires 2 operands")
	}
	dst, src := ops[0], ops[1]
	if err := checkRegisterWidths(dst, src); err != nil {
		return nil, err
	}
	wide, err := operandWidth(dst, src)
	if err != nil {
		return nil, err
	}

	switch {
	case dst.Kind == cpu.OperandRegister && src.IsImmediate():
		data, err := immediateBytes(src, wide)
		if err != nil {
			return nil, err
		}
		op := byte(cpu.EncMovImmReg)<<4 | w(wide)<<3 | byte(dst.Reg)
		return append([]byte{op}, data...), nil

	case dst.Kind == cpu.OperandMemory && src.IsImmediate():
		rm, err := encodeModRM(0, dst)
		if err != nil {
			return nil, err
		}
		data, err := immediateBytes(src, wide)
		if err != nil {
			return nil, err
		}
		code := append([]byte{byte(cpu.EncMovImmRegMem)<<1 | w(wide)}, rm...)
		return append(code, data...), nil

	case dst.IsAccumulator() && src.Kind == cpu.OperandMemory && src.EA.IsDirect():
		lo, hi := cpu.SplitWord(src.EA.Disp)
		return []byte{byte(cpu.EncMovMemAcc)<<1 | 1, lo, hi}, nil

	case dst.Kind == cpu.OperandMemory && dst.EA.IsDirect() && src.IsAccumulator():
		lo, hi := cpu.SplitWord(dst.EA.Disp)
		return []byte{byte(cpu.EncMovAccMem)<<1 | 1, lo, hi}, nil
	}

	return encodeRegMem(cpu.EncMovRegMem, dst, src, wide)
}

// encodeRegMem encodes the 6-bit-opcode reg, r/m forms. Register destinations
// of a memory source set the d bit; everything else puts the destination in r/m.
func encodeRegMem(enc byte, dst, src Operand, wide bool) ([]byte, error) {
	switch {
	case dst.Kind == cpu.OperandRegister && src.Kind == cpu.OperandMemory:
		rm, err := encodeModRM(uint8(dst.Reg), src)
		if err != nil {
			return nil, err
		}
		return append([]byte{enc<<2 | 1<<1 | w(wide)}, rm...), nil

	case src.Kind == cpu.OperandRegister && (dst.Kind == cpu.OperandRegister || dst.Kind == cpu.OperandMemory):
		rm, err := encodeModRM(uint8(src.Reg), dst)
		if err != nil {
			return nil, err
		}
		return append([]byte{enc<<2 | w(wide)}, rm...), nil
	}
	return nil, fmt.Errorf("unsupported operand combination: %s, %s", dst.Raw, src.Raw)
}
