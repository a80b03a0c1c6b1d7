package disassembler_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/i8086/cpu"
	"github.com/Urethramancer/i8086/disassembler"
)

var _ = Describe("Decoder", func() {
	decode := func(code ...byte) cpu.Instruction {
		inst, err := disassembler.Decode(code, 0)
		Expect(err).NotTo(HaveOccurred())
		return inst
	}

	Describe("Immediate to register", func() {
		// MOV AX, 5 -> B8 05 00
		It("should decode MOV AX, 5", func() {
			inst := decode(0xB8, 0x05, 0x00)

			Expect(inst.Op).To(Equal(cpu.OpMOV))
			Expect(inst.Size).To(Equal(uint32(3)))
			Expect(inst.Dst).To(Equal(cpu.RegisterOperand(cpu.AX, true)))
			Expect(inst.Src).To(Equal(cpu.ImmediateOperand(5)))
			Expect(inst.Text).To(Equal("MOV AX, 5"))
		})

		// MOV CL, 7 -> B1 07
		It("should decode byte registers", func() {
			inst := decode(0xB1, 0x07)

			Expect(inst.Size).To(Equal(uint32(2)))
			Expect(inst.Wide).To(BeFalse())
			Expect(inst.Text).To(Equal("MOV CL, 7"))
		})
	})

	Describe("Register/memory to/from register", func() {
		DescribeTable("rendering",
			func(code []byte, text string, size int) {
				inst := decode(code...)
				Expect(inst.Text).To(Equal(text))
				Expect(inst.Size).To(Equal(uint32(size)))
			},
			Entry("MOV AX, BX", []byte{0x89, 0xD8}, "MOV AX, BX", 2),
			Entry("MOV AH, AL", []byte{0x88, 0xC4}, "MOV AH, AL", 2),
			Entry("MOV AX, [BX + SI]", []byte{0x8B, 0x00}, "MOV AX, [BX + SI]", 2),
			Entry("MOV [BP + DI], CX", []byte{0x89, 0x0B}, "MOV [BP + DI], CX", 2),
			Entry("MOV AX, [BP + 4]", []byte{0x8B, 0x46, 0x04}, "MOV AX, [BP + 4]", 3),
			Entry("MOV AX, [BP + 0]", []byte{0x8B, 0x46, 0x00}, "MOV AX, [BP + 0]", 3),
			Entry("MOV DX, [SI + 1000]", []byte{0x8B, 0x94, 0xE8, 0x03}, "MOV DX, [SI + 1000]", 4),
			Entry("8-bit displacement is zero-extended", []byte{0x8B, 0x47, 0xFF}, "MOV AX, [BX + 255]", 3),
			Entry("ADD AX, BX", []byte{0x01, 0xD8}, "ADD AX, BX", 2),
			Entry("ADD BX, [BP + DI + 4]", []byte{0x03, 0x5B, 0x04}, "ADD BX, [BP + DI + 4]", 3),
			Entry("SUB CX, DX", []byte{0x29, 0xD1}, "SUB CX, DX", 2),
			Entry("CMP SI, DI", []byte{0x39, 0xFE}, "CMP SI, DI", 2),
		)

		// MOV AX, [1000] -> 8B 06 E8 03
		It("should treat mode 00 r/m 110 as a direct address", func() {
			inst := decode(0x8B, 0x06, 0xE8, 0x03)

			Expect(inst.Size).To(Equal(uint32(4)))
			Expect(inst.Src.Kind).To(Equal(cpu.OperandMemory))
			Expect(inst.Src.EA.IsDirect()).To(BeTrue())
			Expect(inst.Src.EA.Disp).To(Equal(uint16(1000)))
			Expect(inst.Text).To(Equal("MOV AX, [1000]"))
		})
	})

	Describe("Immediate to register/memory", func() {
		DescribeTable("rendering",
			func(code []byte, text string, size int) {
				inst := decode(code...)
				Expect(inst.Text).To(Equal(text))
				Expect(inst.Size).To(Equal(uint32(size)))
			},
			Entry("ADD BX, 5 (sign-extend form)", []byte{0x83, 0xC3, 0x05}, "ADD BX, 5", 3),
			Entry("SUB BX, 1000", []byte{0x81, 0xEB, 0xE8, 0x03}, "SUB BX, 1000", 4),
			Entry("CMP [BX], byte 7", []byte{0x80, 0x3F, 0x07}, "CMP [BX], byte 7", 3),
			Entry("ADD [BP + SI + 4], word 300", []byte{0x81, 0x42, 0x04, 0x2C, 0x01}, "ADD [BP + SI + 4], word 300", 5),
			Entry("MOV [1000], word 300", []byte{0xC7, 0x06, 0xE8, 0x03, 0x2C, 0x01}, "MOV [1000], word 300", 6),
			Entry("MOV [BP + DI], byte 7", []byte{0xC6, 0x03, 0x07}, "MOV [BP + DI], byte 7", 3),
		)

		It("should store a sign-extended immediate raw", func() {
			inst := decode(0x83, 0xC3, 0xFF)

			Expect(inst.Src.Imm).To(Equal(uint16(0xFF)))
			Expect(inst.Wide).To(BeTrue())
		})

		It("should reject sub-opcodes outside ADD, SUB and CMP", func() {
			_, err := disassembler.Decode([]byte{0x80, 0x0F, 0x01}, 0)
			Expect(errors.Is(err, disassembler.ErrUnknownOpcode)).To(BeTrue())
		})
	})

	Describe("Accumulator forms", func() {
		DescribeTable("rendering",
			func(code []byte, text string, size int) {
				inst := decode(code...)
				Expect(inst.Text).To(Equal(text))
				Expect(inst.Size).To(Equal(uint32(size)))
			},
			Entry("MOV AX, [1000]", []byte{0xA1, 0xE8, 0x03}, "MOV AX, [1000]", 3),
			Entry("MOV [1000], AX", []byte{0xA3, 0xE8, 0x03}, "MOV [1000], AX", 3),
			Entry("MOV AX, [16] with one address byte", []byte{0xA0, 0x10}, "MOV AX, [16]", 2),
			Entry("ADD AX, [1000]", []byte{0x05, 0xE8, 0x03}, "ADD AX, [1000]", 3),
			Entry("SUB AX, [1]", []byte{0x2D, 0x01, 0x00}, "SUB AX, [1]", 3),
			Entry("CMP AX, [5] with one address byte", []byte{0x3C, 0x05}, "CMP AX, [5]", 2),
		)

		DescribeTable("operands",
			func(code []byte, op cpu.OpCode, addr uint16) {
				inst := decode(code...)
				Expect(inst.Op).To(Equal(op))
				Expect(inst.Wide).To(BeTrue())
				Expect(inst.Dst.Kind).To(Equal(cpu.OperandRegister))
				Expect(inst.Dst.Reg).To(Equal(cpu.AX))
				Expect(inst.Dst.Wide).To(BeTrue())
				Expect(inst.Src.Kind).To(Equal(cpu.OperandMemory))
				Expect(inst.Src.EA.IsDirect()).To(BeTrue())
				Expect(uint16(inst.Src.EA.Disp)).To(Equal(addr))
			},
			Entry("ADD byte-address form", []byte{0x04, 0x01}, cpu.OpADD, uint16(1)),
			Entry("SUB byte-address form", []byte{0x2C, 0x7F}, cpu.OpSUB, uint16(0x7F)),
			Entry("CMP word-address form", []byte{0x3D, 0x34, 0x12}, cpu.OpCMP, uint16(0x1234)),
			Entry("MOV byte-address form", []byte{0xA0, 0x10}, cpu.OpMOV, uint16(0x10)),
		)
	})

	Describe("Conditional jumps and loops", func() {
		DescribeTable("rendering",
			func(code []byte, op cpu.OpCode, text string) {
				inst := decode(code...)
				Expect(inst.Op).To(Equal(op))
				Expect(inst.Size).To(Equal(uint32(2)))
				Expect(inst.Dst.Kind).To(Equal(cpu.OperandImmediate))
				Expect(inst.Text).To(Equal(text))
				Expect(disassembler.IsBranch(inst)).To(BeTrue())
			},
			Entry("JNZ", []byte{0x75, 0xFE}, cpu.OpJNZ, "JNZ $-2"),
			Entry("JE", []byte{0x74, 0x04}, cpu.OpJE, "JE $+4"),
			Entry("JO", []byte{0x70, 0x00}, cpu.OpJO, "JO $+0"),
			Entry("JG", []byte{0x7F, 0x80}, cpu.OpJG, "JG $-128"),
			Entry("LOOPNZ", []byte{0xE0, 0x10}, cpu.OpLOOPNZ, "LOOPNZ $+16"),
			Entry("LOOP", []byte{0xE2, 0xFC}, cpu.OpLOOP, "LOOP $-4"),
			Entry("JCXZ", []byte{0xE3, 0x7F}, cpu.OpJCXZ, "JCXZ $+127"),
		)

		It("should decode all twenty single-byte forms", func() {
			Expect(cpu.JumpOpcodes).To(HaveLen(20))
			for b, op := range cpu.JumpOpcodes {
				inst := decode(b, 0x00)
				Expect(inst.Op).To(Equal(op))
			}
		})
	})

	Describe("Failures", func() {
		It("should report an unknown opcode with its offset", func() {
			_, err := disassembler.Decode([]byte{0xB8, 0x05, 0x00, 0x0F}, 3)

			var de *disassembler.DecodeError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Offset).To(Equal(3))
			Expect(de.Byte).To(Equal(byte(0x0F)))
			Expect(errors.Is(err, disassembler.ErrUnknownOpcode)).To(BeTrue())
		})

		It("should report a truncated instruction", func() {
			_, err := disassembler.Decode([]byte{0xB8, 0x05}, 0)
			Expect(errors.Is(err, disassembler.ErrTruncated)).To(BeTrue())
		})

		It("should reject r/m values outside the table", func() {
			_, _, err := disassembler.ResolveEA(8, cpu.ModeMem, 0, 0)
			Expect(errors.Is(err, disassembler.ErrInvalidRM)).To(BeTrue())
		})
	})
})

var _ = Describe("Addressing resolver", func() {
	DescribeTable("r/m table",
		func(rm, mode, lo, hi uint8, text string) {
			got, _, err := disassembler.ResolveEA(rm, mode, lo, hi)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(text))
		},
		Entry("000", cpu.RMBXSI, cpu.ModeMem, uint8(0), uint8(0), "[BX + SI]"),
		Entry("001", cpu.RMBXDI, cpu.ModeMem, uint8(0), uint8(0), "[BX + DI]"),
		Entry("010", cpu.RMBPSI, cpu.ModeMemDisp8, uint8(2), uint8(0), "[BP + SI + 2]"),
		Entry("011", cpu.RMBPDI, cpu.ModeMemDisp16, uint8(0x34), uint8(0x12), "[BP + DI + 4660]"),
		Entry("100", cpu.RMSI, cpu.ModeMem, uint8(0), uint8(0), "[SI]"),
		Entry("101", cpu.RMDI, cpu.ModeMemDisp8, uint8(9), uint8(0), "[DI + 9]"),
		Entry("110 direct", cpu.RMBP, cpu.ModeMem, uint8(0x10), uint8(0x27), "[10000]"),
		Entry("110 with displacement", cpu.RMBP, cpu.ModeMemDisp8, uint8(1), uint8(0), "[BP + 1]"),
		Entry("111", cpu.RMBX, cpu.ModeMem, uint8(0), uint8(0), "[BX]"),
	)
})
