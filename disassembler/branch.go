package disassembler

import (
	"github.com/Urethramancer/i8086/cpu"
)

// decodeJump decodes the conditional jumps and loops: opcode disp8.
// The raw displacement byte is kept; execution reads it as signed.
func decodeJump(op cpu.OpCode, r *reader) (cpu.Instruction, bool, error) {
	if _, err := r.next(); err != nil {
		return cpu.Instruction{}, false, err
	}
	disp, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	return cpu.Instruction{
		Op:  op,
		Dst: cpu.ImmediateOperand(uint16(disp)),
	}, true, nil
}

// IsBranch reports whether an instruction transfers control.
func IsBranch(inst cpu.Instruction) bool {
	return inst.Op.IsJump()
}
