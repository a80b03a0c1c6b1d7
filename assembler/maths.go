package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// arithEncodings holds the reg, r/m and accumulator-direct opcodes of ADD, SUB and CMP.
var arithEncodings = map[cpu.OpCode][2]byte{
	cpu.OpADD: {cpu.EncAddRegMem, cpu.EncAddMemAcc},
	cpu.OpSUB: {cpu.EncSubRegMem, cpu.EncSubMemAcc},
	cpu.OpCMP: {cpu.EncCmpRegMem, cpu.EncCmpMemAcc},
}

// assembleArith handles ADD, SUB and CMP.
func assembleArith(op cpu.OpCode, ops []Operand) ([]byte, error) {
	if len(ops) != 2 {
		return nil, fmt.Errorf("%s requires 2 operands", op)
	}
	enc, ok := arithEncodings[op]
	if !ok {
		return nil, fmt.Errorf("unknown arithmetic operation %s", op)
	}
	dst, src := ops[0], ops[1]
	if dst.IsImmediate() {
		return nil, fmt.Errorf("%s destination cannot be an immediate", op)
	}
	if err := checkRegisterWidths(dst, src); err != nil {
		return nil, err
	}
	wide, err := operandWidth(dst, src)
	if err != nil {
		return nil, err
	}

	// The accumulator form addresses memory directly; it carries no immediate.
	if dst.IsAccumulator() && src.Kind == cpu.OperandMemory && src.EA.IsDirect() {
		lo, hi := cpu.SplitWord(src.EA.Disp)
		return []byte{enc[1]<<1 | 1, lo, hi}, nil
	}

	if !src.IsImmediate() {
		return encodeRegMem(enc[0], dst, src, wide)
	}

	sub, _ := cpu.ArithmeticSub(op)
	rm, err := encodeModRM(sub, dst)
	if err != nil {
		return nil, err
	}

	// Small word immediates use the one-byte s=1 form.
	signExtend := wide && src.Value >= 0 && src.Value <= 0x7F
	var s byte
	dataWide := wide
	if signExtend {
		s = 1
		dataWide = false
	}
	data, err := immediateBytes(src, dataWide)
	if err != nil {
		return nil, err
	}
	code := append([]byte{byte(cpu.EncImmRegMem)<<2 | s<<1 | w(wide)}, rm...)
	return append(code, data...), nil
}
