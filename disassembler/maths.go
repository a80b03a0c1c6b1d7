package disassembler

import (
	"github.com/Urethramancer/i8086/cpu"
)

// decodeRegMemReg decodes the register/memory to/from register form shared by
// MOV, ADD, SUB and CMP: xxxxxxdw mod reg r/m [disp-lo] [disp-hi].
func decodeRegMemReg(op cpu.OpCode, r *reader) (cpu.Instruction, bool, error) {
	b, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	dir := b&0b10 != 0 // 1 = reg is the destination
	wide := b&0b01 != 0

	b, err = r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	mode := b >> 6
	reg := (b >> 3) & 7
	rm := b & 7

	regOp := cpu.RegisterOperand(cpu.Register(reg), wide)
	rmOp, err := decodeRM(r, mode, rm, wide)
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	inst := cpu.Instruction{Op: op, Wide: wide}
	if dir {
		inst.Dst, inst.Src = regOp, rmOp
	} else {
		inst.Dst, inst.Src = rmOp, regOp
	}
	return inst, true, nil
}

// decodeImmRegMem decodes the immediate to register/memory form:
// 100000sw mod sub r/m [disp] data [data], or 1100011w mod 000 r/m [disp] data [data] for MOV.
// With s set a word operand takes one data byte, stored without sign extension.
func decodeImmRegMem(r *reader) (cpu.Instruction, bool, error) {
	first, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}
	second, err := r.next()
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	var op cpu.OpCode
	signExtend := false
	if first>>1 == cpu.EncMovImmRegMem {
		op = cpu.OpMOV
	} else {
		var ok bool
		op, ok = cpu.ArithmeticOp((second >> 3) & 7)
		if !ok {
			// Not one of ours; let the wider classes have a go.
			return cpu.Instruction{}, false, nil
		}
		signExtend = first&0b10 != 0
	}
	wide := first&1 != 0

	mode := second >> 6
	rm := second & 7
	dst, err := decodeRM(r, mode, rm, wide)
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	data, err := r.data(wide && !signExtend)
	if err != nil {
		return cpu.Instruction{}, false, err
	}

	return cpu.Instruction{
		Op:   op,
		Dst:  dst,
		Src:  cpu.ImmediateOperand(data),
		Wide: wide,
	}, true, nil
}
