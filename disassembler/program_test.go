package disassembler_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/i8086/cpu"
	"github.com/Urethramancer/i8086/disassembler"
)

var _ = Describe("Program store", func() {
	var p *disassembler.Program

	BeforeEach(func() {
		var err error
		// MOV AX, BX ; MOV CX, 5 ; JNZ $-2
		p, err = disassembler.Disassemble([]byte{0x89, 0xD8, 0xB9, 0x05, 0x00, 0x75, 0xFE}, disassembler.Options{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should key instructions by start offset", func() {
		Expect(p.Len()).To(Equal(3))
		Expect(p.Size()).To(Equal(7))
		Expect(p.Undecoded()).To(BeNil())
		Expect(p.InstructionAt(0).Text).To(Equal("MOV AX, BX"))
		Expect(p.InstructionAt(2).Text).To(Equal("MOV CX, 5"))
		Expect(p.InstructionAt(5).Text).To(Equal("JNZ $-2"))
	})

	It("should return InvalidAddress inside an instruction", func() {
		Expect(p.InstructionAt(1).Op).To(Equal(cpu.OpInvalidAddress))
		Expect(p.InstructionAt(3).Op).To(Equal(cpu.OpInvalidAddress))
		Expect(p.InstructionAt(6).Op).To(Equal(cpu.OpInvalidAddress))
	})

	It("should return EndOfProgram at and past the end", func() {
		Expect(p.InstructionAt(7).Op).To(Equal(cpu.OpEndOfProgram))
		Expect(p.InstructionAt(1 << 20).Op).To(Equal(cpu.OpEndOfProgram))
	})

	It("should give the same answer every time", func() {
		for off := uint32(0); off < 9; off++ {
			Expect(p.InstructionAt(off)).To(Equal(p.InstructionAt(off)))
		}
	})

	It("should list instructions in offset order", func() {
		var offsets []uint32
		for _, inst := range p.Instructions() {
			offsets = append(offsets, inst.Offset)
		}
		Expect(offsets).To(Equal([]uint32{0, 2, 5}))
	})

	It("should keep its own copy of the code", func() {
		code := []byte{0xB8, 0x05, 0x00}
		q := disassembler.NewProgram(code)
		code[0] = 0
		Expect(q.Bytes()[0]).To(Equal(byte(0xB8)))
	})
})

var _ = Describe("Disassemble", func() {
	It("should keep what decoded before a failure", func() {
		p, err := disassembler.Disassemble([]byte{0xB8, 0x05, 0x00, 0x0F, 0xB8}, disassembler.Options{})

		var de *disassembler.DecodeError
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Offset).To(Equal(3))
		Expect(p.Len()).To(Equal(1))
		Expect(p.InstructionAt(0).Text).To(Equal("MOV AX, 5"))
		Expect(p.InstructionAt(3).Op).To(Equal(cpu.OpInvalidAddress))
	})

	It("should list undecoded bytes as data", func() {
		code := []byte{0xB8, 0x05, 0x00, 0x0F, 'H', 'e', 'l', 'l', 'o', 0x00}
		text, err := disassembler.DisassembleText(code, disassembler.Options{})

		Expect(err).To(HaveOccurred())
		Expect(text).To(Equal("bits 16\n\nMOV AX, 5\n; undecoded from offset 3\ndb 0x0f\ndb 'Hello'\ndb 0x00\n"))
	})

	It("should keep short printable runs as hex", func() {
		p, _ := disassembler.Disassemble([]byte{0x0F, 'a', 'b', 0x01}, disassembler.Options{})

		Expect(p.Len()).To(Equal(0))
		Expect(p.Undecoded()).To(Equal([]byte{0x0F, 'a', 'b', 0x01}))

		var sb strings.Builder
		Expect(p.Listing(&sb, false)).To(Succeed())
		Expect(sb.String()).To(Equal("bits 16\n\n; undecoded from offset 0\ndb 0x0f, 0x61, 0x62, 0x01\n"))
	})

	It("should wrap long hex runs at sixteen bytes", func() {
		code := append([]byte{0x0F}, make([]byte, 16)...)
		p, _ := disassembler.Disassemble(code, disassembler.Options{})

		var sb strings.Builder
		Expect(p.Listing(&sb, false)).To(Succeed())
		lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(5))
		Expect(lines[3]).To(Equal("db 0x0f" + strings.Repeat(", 0x00", 15)))
		Expect(lines[4]).To(Equal("db 0x00"))
	})

	It("should render a listing with a header", func() {
		text, err := disassembler.DisassembleText([]byte{0xB8, 0x05, 0x00, 0x01, 0xC3}, disassembler.Options{})

		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("bits 16\n\nMOV AX, 5\nADD BX, AX\n"))
	})

	It("should annotate cycles with a running total", func() {
		// MOV AX, 5 ; ADD [BP + DI + 4], AX ; CMP AX, BX
		code := []byte{0xB8, 0x05, 0x00, 0x01, 0x43, 0x04, 0x39, 0xD8}
		text, err := disassembler.DisassembleText(code, disassembler.Options{Timing: true})

		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		Expect(lines).To(Equal([]string{
			"bits 16",
			"",
			"MOV AX, 5 ; Cycles: +4 = 4",
			"ADD [BP + DI + 4], AX ; Cycles: +27 (16 + 11ea) = 31",
			"CMP AX, BX ; Cycles: n/a",
		}))
	})

	It("should attach timing only when asked", func() {
		p, err := disassembler.Disassemble([]byte{0xB8, 0x05, 0x00}, disassembler.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.InstructionAt(0).Timing).To(BeNil())

		p, err = disassembler.Disassemble([]byte{0xB8, 0x05, 0x00}, disassembler.Options{Timing: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.InstructionAt(0).Timing).To(Equal(&cpu.Timing{Base: 4}))
	})
})
