package disassembler

import (
	"github.com/Urethramancer/i8086/cpu"
)

// decodeMovImmReg decodes MOV immediate to register: 1011 w reg data [data].
func decodeMovImmReg(r *reader) (cpu.Instruction, bool, error) {
	b, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	wide := b&0b1000 != 0
	reg := cpu.Register(b & 7)

	data, err := r.data(wide)
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	return cpu.Instruction{
		Op:   cpu.OpMOV,
		Dst:  cpu.RegisterOperand(reg, wide),
		Src:  cpu.ImmediateOperand(data),
		Wide: wide,
	}, true, nil
}

// decodeMemAcc decodes the accumulator-direct forms: MOV 101000dw and the
// ADD/SUB/CMP xxxxxxxw forms, each followed by addr-lo [addr-hi]. The width
// bit only sizes the address; the operation is always on the word accumulator.
// toMem selects the accumulator-to-memory direction.
func decodeMemAcc(op cpu.OpCode, r *reader, toMem bool) (cpu.Instruction, bool, error) {
	b, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	wide := b&1 != 0

	lo, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	var hi byte
	if wide {
		hi, err = r.next()
		if err != nil {
			return cpu.Instruction{}, false, err
		}
	}

	// Same shape as mode 00, r/m 110.
	_, ea, err := ResolveEA(cpu.RMBP, cpu.ModeMem, lo, hi)
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	acc := cpu.RegisterOperand(cpu.AX, true)
	mem := cpu.MemoryOperand(ea)
	inst := cpu.Instruction{Op: op, Wide: true}
	if toMem {
		inst.Dst, inst.Src = mem, acc
	} else {
		inst.Dst, inst.Src = acc, mem
	}
	return inst, true, nil
}
