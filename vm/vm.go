// Package vm ties the decoder and the CPU together: it decodes a flat binary,
// runs it, traces what executed and reports the final machine state.
package vm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/i8086/cpu"
	"github.com/Urethramancer/i8086/disassembler"
)

// Config controls a run.
type Config struct {
	// Timing enables cycle estimates and accounting.
	Timing bool
	// Trace receives one line per executed instruction when set.
	Trace io.Writer
	// StepLimit halts the run after that many instructions when non-zero.
	StepLimit uint64
	// Log receives diagnostics. A discarding logger is used when nil.
	Log logrus.FieldLogger
}

// VM is a decoded program plus the CPU that runs it.
type VM struct {
	CPU     *cpu.CPU
	Program *disassembler.Program

	cfg Config
	log logrus.FieldLogger
}

// New creates a VM with an empty program.
func New(cfg Config) *VM {
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	c := cpu.New()
	c.Timing = cfg.Timing
	c.StepLimit = cfg.StepLimit

	return &VM{
		CPU:     c,
		Program: disassembler.NewProgram(nil),
		cfg:     cfg,
		log:     log,
	}
}

// LoadCode decodes code into the program store and resets the CPU.
// A decode failure is returned, but everything decoded before it stays loaded.
func (v *VM) LoadCode(code []byte) error {
	v.CPU.Reset()
	p, err := disassembler.Disassemble(code, disassembler.Options{Timing: v.cfg.Timing})
	v.Program = p
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"decoded": p.Len(),
			"bytes":   len(code),
		}).WithError(err).Warn("decoding stopped early")
		return err
	}

	v.log.WithFields(logrus.Fields{
		"instructions": p.Len(),
		"bytes":        len(code),
	}).Debug("program decoded")
	return nil
}

// Run executes until the end of the program or a halt. It returns nil at the
// end of the program and a *cpu.Fault when the run halts.
func (v *VM) Run() error {
	for {
		before := *v.CPU
		inst, err := v.CPU.Step(v.Program)
		if err != nil {
			var f *cpu.Fault
			if errors.As(err, &f) {
				v.log.WithFields(logrus.Fields{
					"ip":   fmt.Sprintf("%04X", f.IP),
					"kind": Classify(err),
				}).WithError(f.Err).Error("simulation halted")
			}
			return err
		}
		if inst.Op == cpu.OpEndOfProgram {
			v.log.WithField("steps", v.CPU.Steps).Debug("reached end of program")
			return nil
		}
		if v.cfg.Trace != nil {
			fmt.Fprintln(v.cfg.Trace, v.traceLine(inst, &before))
		}
	}
}

// traceLine renders an executed instruction with the state it changed.
func (v *VM) traceLine(inst cpu.Instruction, before *cpu.CPU) string {
	var sb strings.Builder
	sb.WriteString(inst.Text)
	if v.cfg.Timing {
		sb.WriteString(" ")
		sb.WriteString(disassembler.CycleNote(inst.Timing, v.CPU.Cycles))
		sb.WriteString(" |")
	} else {
		sb.WriteString(" ;")
	}

	after := v.CPU
	for r := cpu.AX; r <= cpu.DI; r++ {
		if before.R[r] != after.R[r] {
			fmt.Fprintf(&sb, " %s:0x%x->0x%x", r, before.R[r], after.R[r])
		}
	}
	fmt.Fprintf(&sb, " IP:0x%x->0x%x", before.IP, after.IP)
	if before.Flags != after.Flags {
		fmt.Fprintf(&sb, " flags:%s->%s", before.Flags, after.Flags)
	}
	return sb.String()
}

// Classify names the outcome of a run for reporting.
func Classify(err error) string {
	switch {
	case err == nil:
		return "end of program"
	case errors.Is(err, cpu.ErrStepLimit):
		return "step limit"
	case errors.Is(err, cpu.ErrUnimplemented):
		return "unimplemented"
	case errors.Is(err, cpu.ErrInvalidAddress):
		return "invalid address"
	case errors.Is(err, cpu.ErrInvalidInstruction):
		return "invalid instruction"
	case errors.Is(err, cpu.ErrMemoryFault):
		return "memory fault"
	case errors.Is(err, cpu.ErrInvariant):
		return "invariant violation"
	}
	return "error"
}
