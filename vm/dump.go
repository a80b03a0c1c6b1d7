package vm

import (
	"fmt"
	"io"

	"github.com/Urethramancer/i8086/cpu"
)

// DumpRegisters prints the non-zero registers, IP, flags and, with timing, the cycle total.
func (v *VM) DumpRegisters(w io.Writer) {
	c := v.CPU
	fmt.Fprintln(w, "Final registers:")
	for r := cpu.AX; r <= cpu.DI; r++ {
		if val := c.Register(r); val != 0 {
			fmt.Fprintf(w, "      %s: 0x%04x (%d)\n", r, val, val)
		}
	}
	fmt.Fprintf(w, "      IP: 0x%04x (%d)\n", c.IP, c.IP)
	if f := c.Flags.String(); f != "" {
		fmt.Fprintf(w, "   flags: %s\n", f)
	}
	if v.cfg.Timing {
		fmt.Fprintf(w, "  cycles: %d\n", c.Cycles)
	}
}

// DumpMemory copies the whole simulated address space to w.
func (v *VM) DumpMemory(w io.Writer) (int64, error) {
	n, err := io.Copy(w, v.CPU.MemoryReader())
	if err != nil {
		return n, fmt.Errorf("memory dump failed after %d bytes: %w", n, err)
	}
	v.log.WithField("bytes", n).Debug("memory dumped")
	return n, nil
}
