package disassembler

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/i8086/cpu"
)

var (
	// ErrUnknownOpcode means no instruction form matches the byte.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrTruncated means the code ends inside an instruction.
	ErrTruncated = errors.New("truncated instruction")
	// ErrInvalidRM means an r/m or mode field could not be resolved.
	ErrInvalidRM = errors.New("invalid r/m field")
)

// DecodeError reports where decoding stopped.
type DecodeError struct {
	Offset int
	Byte   byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at offset %d (byte %08b): %v", e.Offset, e.Byte, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// reader walks the bytes of one instruction.
type reader struct {
	code  []byte
	start int
	pos   int
}

func (r *reader) next() (byte, error) {
	if r.pos >= len(r.code) {
		return 0, ErrTruncated
	}
	b := r.code[r.pos]
	r.pos++
	return b, nil
}

// data reads one byte, or a little-endian word when wide.
func (r *reader) data(wide bool) (uint16, error) {
	lo, err := r.next()
	if err != nil {
		return 0, err
	}
	if !wide {
		return uint16(lo), nil
	}
	hi, err := r.next()
	if err != nil {
		return 0, err
	}
	return cpu.JoinWord(lo, hi), nil
}

func (r *reader) length() uint32 {
	return uint32(r.pos - r.start)
}

// Decode decodes the instruction starting at offset. Opcode classes are tried
// from the narrowest significant field to the widest: 4, 6, 7, then 8 bits.
func Decode(code []byte, offset int) (cpu.Instruction, error) {
	if offset < 0 || offset >= len(code) {
		return cpu.Instruction{}, &DecodeError{Offset: offset, Err: ErrTruncated}
	}

	b := code[offset]
	r := &reader{code: code, start: offset, pos: offset}

	for _, class := range widthClasses {
		r.pos = offset
		inst, ok, err := class(r, b)
		if err != nil {
			return cpu.Instruction{}, &DecodeError{Offset: offset, Byte: b, Err: err}
		}
		if ok {
			inst.Offset = uint32(offset)
			inst.Size = r.length()
			inst.Text = Render(inst)
			return inst, nil
		}
	}

	return cpu.Instruction{}, &DecodeError{Offset: offset, Byte: b, Err: ErrUnknownOpcode}
}

// widthClass tries one opcode width. ok is false when the byte is not in its class.
type widthClass func(r *reader, b byte) (inst cpu.Instruction, ok bool, err error)

var widthClasses = []widthClass{decodeWidth4, decodeWidth6, decodeWidth7, decodeWidth8}

func decodeWidth4(r *reader, b byte) (cpu.Instruction, bool, error) {
	switch b >> 4 {
	case cpu.EncMovImmReg:
		return decodeMovImmReg(r)
	}
	return cpu.Instruction{}, false, nil
}

func decodeWidth6(r *reader, b byte) (cpu.Instruction, bool, error) {
	switch b >> 2 {
	case cpu.EncMovRegMem:
		return decodeRegMemReg(cpu.OpMOV, r)
	case cpu.EncAddRegMem:
		return decodeRegMemReg(cpu.OpADD, r)
	case cpu.EncSubRegMem:
		return decodeRegMemReg(cpu.OpSUB, r)
	case cpu.EncCmpRegMem:
		return decodeRegMemReg(cpu.OpCMP, r)
	case cpu.EncImmRegMem:
		return decodeImmRegMem(r)
	}
	return cpu.Instruction{}, false, nil
}

func decodeWidth7(r *reader, b byte) (cpu.Instruction, bool, error) {
	switch b >> 1 {
	case cpu.EncMovImmRegMem:
		return decodeImmRegMem(r)
	case cpu.EncMovMemAcc:
		return decodeMemAcc(cpu.OpMOV, r, false)
	case cpu.EncMovAccMem:
		return decodeMemAcc(cpu.OpMOV, r, true)
	case cpu.EncAddMemAcc:
		return decodeMemAcc(cpu.OpADD, r, false)
	case cpu.EncSubMemAcc:
		return decodeMemAcc(cpu.OpSUB, r, false)
	case cpu.EncCmpMemAcc:
		return decodeMemAcc(cpu.OpCMP, r, false)
	}
	return cpu.Instruction{}, false, nil
}

func decodeWidth8(r *reader, b byte) (cpu.Instruction, bool, error) {
	if op, ok := cpu.JumpOpcodes[b]; ok {
		return decodeJump(op, r)
	}
	return cpu.Instruction{}, false, nil
}
