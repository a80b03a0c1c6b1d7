package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// assembleJump handles the conditional jumps and loops. The operand is either
// a raw displacement written "$+n" / "$-n" or a label.
func assembleJump(op cpu.OpCode, ops []Operand, labels map[string]uint32, pc uint32, final bool) ([]byte, error) {
	if len(ops) != 1 {
		return nil, fmt.Errorf("%s requires 1 operand", op)
	}
	b, ok := cpu.JumpByte(op)
	if !ok {
		return nil, fmt.Errorf("%s has no short encoding", op)
	}

	target := ops[0]
	var disp int64
	switch {
	case target.Rel:
		disp = target.Value
	case target.Label != "":
		addr, ok := labels[target.Label]
		if !ok {
			if final {
				return nil, fmt.Errorf("undefined label: %s", target.Label)
			}
			return []byte{b, 0}, nil
		}
		disp = int64(addr) - int64(pc+2)
	default:
		return nil, fmt.Errorf("invalid jump target: %s", target.Raw)
	}

	if disp < -128 || disp > 127 {
		if !final {
			return []byte{b, 0}, nil
		}
		return nil, fmt.Errorf("jump displacement %d out of range", disp)
	}
	return []byte{b, byte(int8(disp))}, nil
}
