package disassembler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// Options for a decode pass.
type Options struct {
	// Timing attaches a cycle estimate to every instruction that has one.
	Timing bool
}

// Disassemble decodes code linearly from offset 0. On failure it returns the
// program decoded so far together with a *DecodeError for the failing offset.
func Disassemble(code []byte, opts Options) (*Program, error) {
	p := NewProgram(code)
	for pc := 0; pc < len(code); {
		inst, err := Decode(code, pc)
		if err != nil {
			p.stop = pc
			return p, err
		}

		if opts.Timing {
			t, err := cpu.EstimateTiming(inst.Op, inst.Dst, inst.Src)
			switch {
			case err == nil:
				inst.Timing = t
			case errors.Is(err, cpu.ErrUnimplemented):
				// Known gap in the cycle table; left without an estimate.
			default:
				p.stop = pc
				return p, &DecodeError{Offset: pc, Byte: code[pc], Err: err}
			}
		}

		p.Insert(inst)
		pc += int(inst.Size)
	}
	return p, nil
}

// Listing writes the program as assembly text: a "bits 16" header, a blank
// line, then one instruction per line. With timing, each line gets a cycle
// note with a running total in listing order. Bytes past a decode failure
// follow as db data.
func (p *Program) Listing(w io.Writer, timing bool) error {
	if _, err := fmt.Fprint(w, "bits 16\n\n"); err != nil {
		return err
	}

	var total uint64
	for _, inst := range p.Instructions() {
		line := inst.Text
		if timing {
			if inst.Timing != nil {
				total += uint64(inst.Timing.Total())
			}
			line += " " + CycleNote(inst.Timing, total)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if rest := p.Undecoded(); len(rest) > 0 {
		_, err := fmt.Fprintf(w, "; undecoded from offset %d\n%s", p.stop, formatData(rest))
		return err
	}
	return nil
}

// DisassembleText decodes code and returns its listing. Whatever decoded
// before a failure is still returned alongside the error.
func DisassembleText(code []byte, opts Options) (string, error) {
	p, decodeErr := Disassemble(code, opts)

	var out strings.Builder
	if err := p.Listing(&out, opts.Timing); err != nil {
		return "", err
	}
	return out.String(), decodeErr
}
