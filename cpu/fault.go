package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInstruction means the program store holds an undecodable instruction.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrInvalidAddress means IP points inside or between instructions.
	ErrInvalidAddress = errors.New("invalid instruction address")
	// ErrUnimplemented marks a recognised form the simulator does not execute.
	ErrUnimplemented = errors.New("unimplemented")
	// ErrMemoryFault means an access fell outside the address space.
	ErrMemoryFault = errors.New("memory fault")
	// ErrInvariant means the decoder or timing model produced something impossible.
	ErrInvariant = errors.New("invariant violation")
	// ErrStepLimit means the configured instruction budget ran out.
	ErrStepLimit = errors.New("step limit reached")
)

// Fault halts a run. It wraps one of the errors above.
type Fault struct {
	// IP is the offset of the failing instruction.
	IP   uint16
	Inst Instruction
	Err  error
}

func (f *Fault) Error() string {
	if f.Inst.IsSentinel() {
		return fmt.Sprintf("halt at %04X: %v", f.IP, f.Err)
	}
	return fmt.Sprintf("halt at %04X (%s): %v", f.IP, f.Inst.Text, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
