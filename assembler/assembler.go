package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	labels map[string]uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		labels: make(map[string]uint32),
	}
}

// Assemble takes 8086 assembly in the disassembler's listing syntax and returns the machine code.
func (asm *Assembler) Assemble(src string, baseAddress uint32) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass: resolve label addresses and node sizes until stable.
	for {
		pc := baseAddress
		changed := false
		for _, n := range nodes {
			switch n.Type {
			case NodeLabel:
				if addr, ok := asm.labels[n.Label]; !ok || addr != pc {
					asm.labels[n.Label] = pc
					changed = true
				}
				continue
			case NodeDirective:
				if org, ok, err := asm.directiveOrg(n); err != nil {
					return nil, err
				} else if ok {
					pc = org
					continue
				}
			}

			oldSize := n.Size
			size, err := asm.nodeSize(n, pc)
			if err != nil {
				return nil, fmt.Errorf("line %d: error calculating size for '%v': %w", n.Line, n.Parts, err)
			}
			if oldSize != size {
				changed = true
			}
			n.Size = size
			pc += size
		}
		if !changed {
			break
		}
	}

	// Generate machine code.
	var machineCode []byte
	pc := baseAddress
	for _, n := range nodes {
		var code []byte
		var err error

		switch n.Type {
		case NodeLabel:
			// Labels do not emit code.
			continue
		case NodeDirective:
			if org, ok, _ := asm.directiveOrg(n); ok {
				pc = org
				continue
			}
			code, err = asm.generateDirectiveCode(n)
		case NodeInstruction:
			code, err = asm.generateInstructionCode(n, pc, true)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%v': %w", n.Line, n.Parts, err)
		}
		machineCode = append(machineCode, code...)
		pc += n.Size
	}

	return machineCode, nil
}

// nodeSize returns the encoded size of a node. Unknown labels are allowed while sizing.
func (asm *Assembler) nodeSize(n *Node, pc uint32) (uint32, error) {
	if n.Type == NodeDirective {
		return asm.getDirectiveSize(n)
	}
	code, err := asm.generateInstructionCode(n, pc, false)
	if err != nil {
		return 0, err
	}
	return uint32(len(code)), nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		if commentIndex := strings.IndexRune(line, ';'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			label := strings.TrimSpace(parts[0])
			if label != "" && !strings.ContainsAny(label, " \t[") {
				nodes = append(nodes, &Node{Type: NodeLabel, Label: strings.ToLower(label), Parts: []string{label + ":"}, Line: i + 1})
				line = strings.TrimSpace(parts[1])
			}
		}

		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		nodeParts := []string{mnemonic}
		if operandStr != "" {
			nodeParts = append(nodeParts, operandStr)
		}

		if isDirective(mnemonic) {
			nodes = append(nodes, &Node{Type: NodeDirective, Parts: nodeParts, Line: i + 1})
			continue
		}

		op, err := ParseMnemonic(mnemonic)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		var operands []Operand
		if operandStr != "" {
			for _, s := range splitOperands(operandStr) {
				o, err := parseOperand(s)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", i+1, err)
				}
				operands = append(operands, o)
			}
		}
		nodes = append(nodes, &Node{Type: NodeInstruction, Op: op, Operands: operands, Parts: nodeParts, Line: i + 1})
	}
	return nodes, nil
}

// generateInstructionCode dispatches to the appropriate instruction assembler.
// With final unset, unresolved labels assemble as a zero displacement.
func (asm *Assembler) generateInstructionCode(n *Node, pc uint32, final bool) ([]byte, error) {
	switch {
	case n.Op == cpu.OpMOV:
		return assembleMove(n.Operands)
	case n.Op == cpu.OpADD, n.Op == cpu.OpSUB, n.Op == cpu.OpCMP:
		return assembleArith(n.Op, n.Operands)
	case n.Op.IsJump():
		return assembleJump(n.Op, n.Operands, asm.labels, pc, final)
	}
	return nil, fmt.Errorf("unknown instruction: %s", n.Op)
}

// splitOperands splits an operand string by commas, but ignores commas inside brackets.
func splitOperands(s string) []string {
	var result []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
