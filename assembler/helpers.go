package assembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// rmCodes maps a base/index pair to its r/m field.
var rmCodes = map[[2]cpu.Register]uint8{
	{cpu.BX, cpu.SI}:         cpu.RMBXSI,
	{cpu.BX, cpu.DI}:         cpu.RMBXDI,
	{cpu.BP, cpu.SI}:         cpu.RMBPSI,
	{cpu.BP, cpu.DI}:         cpu.RMBPDI,
	{cpu.NoRegister, cpu.SI}: cpu.RMSI,
	{cpu.NoRegister, cpu.DI}: cpu.RMDI,
	{cpu.BP, cpu.NoRegister}: cpu.RMBP,
	{cpu.BX, cpu.NoRegister}: cpu.RMBX,
}

// modRM packs the second instruction byte.
func modRM(mode, reg, rm uint8) byte {
	return mode<<6 | (reg&7)<<3 | rm&7
}

// encodeModRM encodes a register or memory operand with the given reg field,
// followed by any displacement bytes.
func encodeModRM(reg uint8, op Operand) ([]byte, error) {
	switch op.Kind {
	case cpu.OperandRegister:
		return []byte{modRM(cpu.ModeReg, reg, uint8(op.Reg))}, nil
	case cpu.OperandMemory:
	default:
		return nil, fmt.Errorf("operand '%s' is not a register or memory reference", op.Raw)
	}

	ea := op.EA
	lo, hi := cpu.SplitWord(ea.Disp)
	if ea.IsDirect() {
		return []byte{modRM(cpu.ModeMem, reg, cpu.RMBP), lo, hi}, nil
	}

	rm, ok := rmCodes[[2]cpu.Register{ea.Base, ea.Index}]
	if !ok {
		return nil, fmt.Errorf("unsupported address %s", ea)
	}

	switch {
	case !ea.HasDisp && rm == cpu.RMBP:
		// [BP] has no mod 00 form.
		return []byte{modRM(cpu.ModeMemDisp8, reg, rm), 0}, nil
	case !ea.HasDisp:
		return []byte{modRM(cpu.ModeMem, reg, rm)}, nil
	case ea.Disp <= 0x7F:
		return []byte{modRM(cpu.ModeMemDisp8, reg, rm), lo}, nil
	}
	return []byte{modRM(cpu.ModeMemDisp16, reg, rm), lo, hi}, nil
}

// operandWidth decides the operation width from the operands: register width
// wins, then a size keyword on either side.
func operandWidth(dst, src Operand) (bool, error) {
	for _, o := range []Operand{dst, src} {
		if o.Kind == cpu.OperandRegister {
			return o.Wide, nil
		}
	}
	for _, o := range []Operand{dst, src} {
		switch o.Size {
		case SizeByte:
			return false, nil
		case SizeWord:
			return true, nil
		}
	}
	return false, fmt.Errorf("operation size not specified; use byte or word")
}

// checkRegisterWidths rejects mixing byte and word registers.
func checkRegisterWidths(dst, src Operand) error {
	if dst.Kind == cpu.OperandRegister && src.Kind == cpu.OperandRegister && dst.Wide != src.Wide {
		return fmt.Errorf("operand size mismatch: %s, %s", dst.Raw, src.Raw)
	}
	return nil
}

// immediateBytes encodes an immediate in one or two bytes.
func immediateBytes(op Operand, wide bool) ([]byte, error) {
	if op.Label != "" {
		return nil, fmt.Errorf("labels are only valid as jump targets: %s", op.Label)
	}
	if op.Rel {
		return nil, fmt.Errorf("relative operand not valid here: %s", op.Raw)
	}
	v := op.Value
	if wide {
		if v < -0x8000 || v > 0xFFFF {
			return nil, fmt.Errorf("immediate %d out of range for a word", v)
		}
		lo, hi := cpu.SplitWord(uint16(v))
		return []byte{lo, hi}, nil
	}
	if v < -0x80 || v > 0xFF {
		return nil, fmt.Errorf("immediate %d out of range for a byte", v)
	}
	return []byte{byte(v)}, nil
}

// w returns the width bit.
func w(wide bool) byte {
	if wide {
		return 1
	}
	return 0
}
