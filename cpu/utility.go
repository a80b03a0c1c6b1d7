package cpu

import (
	"encoding/binary"
	"fmt"
)

// checkRange verifies that n bytes starting at addr lie inside memory.
func (c *CPU) checkRange(addr uint32, n uint32) error {
	if uint64(addr)+uint64(n) > uint64(len(c.Mem)) {
		return fmt.Errorf("access of %d bytes at %05X: %w", n, addr, ErrMemoryFault)
	}
	return nil
}

// ReadU8 reads a byte from memory.
func (c *CPU) ReadU8(addr uint32) (uint8, error) {
	if err := c.checkRange(addr, 1); err != nil {
		return 0, err
	}
	return c.Mem[addr], nil
}

// WriteU8 writes a byte to memory.
func (c *CPU) WriteU8(addr uint32, val uint8) error {
	if err := c.checkRange(addr, 1); err != nil {
		return err
	}
	c.Mem[addr] = val
	return nil
}

// ReadU16 reads a little-endian 16-bit word from memory at the given address.
func (c *CPU) ReadU16(addr uint32) (uint16, error) {
	if err := c.checkRange(addr, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(c.Mem[addr:]), nil
}

// WriteU16 writes a 16-bit word to memory at the given address in little-endian format.
func (c *CPU) WriteU16(addr uint32, val uint16) error {
	if err := c.checkRange(addr, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(c.Mem[addr:], val)
	return nil
}

// setZS updates the zero and sign flags from a result of the given width.
func (c *CPU) setZS(result uint16, wide bool) {
	if wide {
		c.Flags.Zero = result == 0
		c.Flags.Sign = result&0x8000 != 0
		return
	}
	c.Flags.Zero = result&0xFF == 0
	c.Flags.Sign = result&0x80 != 0
}
