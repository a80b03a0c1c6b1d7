package cpu

import (
	"fmt"
)

// Handler executes one decoded instruction against the CPU.
type Handler func(*CPU, *Instruction) error

// Dispatch maps an opcode to its handler. Every opcode has a case, so adding
// one means deciding here whether it executes.
func Dispatch(op OpCode) (Handler, error) {
	switch op {
	case OpMOV:
		return (*CPU).opMOV, nil

	case OpADD, OpSUB, OpCMP:
		return (*CPU).opArith, nil

	case OpJNZ, OpJE:
		return (*CPU).opJcc, nil

	// Decoded and rendered, not executed.
	case OpJO, OpJNO, OpJB, OpJNB, OpJBE, OpJA, OpJS, OpJNS, OpJP, OpJNP,
		OpJL, OpJNL, OpJLE, OpJG, OpLOOPNZ, OpLOOPZ, OpLOOP, OpJCXZ:
		return nil, fmt.Errorf("execution of %s: %w", op, ErrUnimplemented)

	case OpInvalid:
		return nil, ErrInvalidInstruction
	case OpInvalidAddress:
		return nil, ErrInvalidAddress
	case OpEndOfProgram:
		return nil, fmt.Errorf("dispatch of %s: %w", op, ErrInvariant)
	}

	return nil, fmt.Errorf("unknown opcode %d: %w", int(op), ErrInvalidInstruction)
}
