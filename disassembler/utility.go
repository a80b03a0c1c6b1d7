package disassembler

import (
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

// Render formats an instruction as assembly text: "OP dst, src" or "OP operand".
// Immediates going to memory carry a size keyword; jumps print their raw displacement.
func Render(inst cpu.Instruction) string {
	if inst.IsSentinel() {
		return inst.Op.String()
	}
	if inst.Op.IsJump() {
		return fmt.Sprintf("%s $%+d", inst.Op, inst.Displacement())
	}

	dst := inst.Dst.String()
	if inst.Src.Kind == cpu.OperandNone {
		return fmt.Sprintf("%s %s", inst.Op, dst)
	}

	src := inst.Src.String()
	if inst.Src.Kind == cpu.OperandImmediate && inst.Dst.Kind == cpu.OperandMemory {
		src = SizeKeyword(inst.Wide) + " " + src
	}
	return fmt.Sprintf("%s %s, %s", inst.Op, dst, src)
}

// SizeKeyword returns "word" or "byte".
func SizeKeyword(wide bool) string {
	if wide {
		return "word"
	}
	return "byte"
}

// CycleNote formats the cycle annotation appended to a line when timing is on.
// total is the running total including this instruction.
func CycleNote(t *cpu.Timing, total uint64) string {
	if t == nil {
		return "; Cycles: n/a"
	}
	if t.EA > 0 {
		return fmt.Sprintf("; Cycles: +%d (%d + %dea) = %d", t.Total(), t.Base, t.EA, total)
	}
	return fmt.Sprintf("; Cycles: +%d = %d", t.Total(), total)
}
