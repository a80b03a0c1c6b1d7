package disassembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// eaRegisters is the r/m table of base and index registers.
var eaRegisters = [8][2]cpu.Register{
	cpu.RMBXSI: {cpu.BX, cpu.SI},
	cpu.RMBXDI: {cpu.BX, cpu.DI},
	cpu.RMBPSI: {cpu.BP, cpu.SI},
	cpu.RMBPDI: {cpu.BP, cpu.DI},
	cpu.RMSI:   {cpu.NoRegister, cpu.SI},
	cpu.RMDI:   {cpu.NoRegister, cpu.DI},
	cpu.RMBP:   {cpu.BP, cpu.NoRegister},
	cpu.RMBX:   {cpu.BX, cpu.NoRegister},
}

// ResolveEA turns an r/m field, a memory mode and the raw displacement bytes
// into an effective address and its text. 8-bit displacements are zero-extended.
func ResolveEA(rm, mode, lo, hi uint8) (string, cpu.EffectiveAddress, error) {
	if rm > 7 {
		return "", cpu.EffectiveAddress{}, fmt.Errorf("r/m %03b: %w", rm, ErrInvalidRM)
	}

	regs := eaRegisters[rm]
	ea := cpu.EffectiveAddress{Base: regs[0], Index: regs[1]}

	switch mode {
	case cpu.ModeMem:
		if rm == cpu.RMBP {
			// Direct address: no base register at all.
			ea.Base = cpu.NoRegister
			ea.Disp = cpu.JoinWord(lo, hi)
			ea.HasDisp = true
		}
	case cpu.ModeMemDisp8:
		ea.Disp = uint16(lo)
		ea.HasDisp = true
	case cpu.ModeMemDisp16:
		ea.Disp = cpu.JoinWord(lo, hi)
		ea.HasDisp = true
	default:
		return "", cpu.EffectiveAddress{}, fmt.Errorf("mode %02b is not a memory mode: %w", mode, ErrInvalidRM)
	}

	return ea.String(), ea, nil
}

// displacementBytes is the number of displacement bytes a mode and r/m consume.
func displacementBytes(mode, rm uint8) int {
	switch mode {
	case cpu.ModeMem:
		if rm == cpu.RMBP {
			return 2
		}
		return 0
	case cpu.ModeMemDisp8:
		return 1
	case cpu.ModeMemDisp16:
		return 2
	}
	return 0
}

// decodeRM reads any displacement bytes and resolves the r/m operand.
func decodeRM(r *reader, mode, rm uint8, wide bool) (cpu.Operand, error) {
	if mode == cpu.ModeReg {
		return cpu.RegisterOperand(cpu.Register(rm), wide), nil
	}

	var lo, hi uint8
	var err error
	switch displacementBytes(mode, rm) {
	case 1:
		lo, err = r.next()
	case 2:
		lo, err = r.next()
		if err == nil {
			hi, err = r.next()
		}
	}
	if err != nil {
		return cpu.Operand{}, err
	}

	_, ea, err := ResolveEA(rm, mode, lo, hi)
	if err != nil {
		return cpu.Operand{}, err
	}
	return cpu.MemoryOperand(ea), nil
}
