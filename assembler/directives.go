package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// isDirective reports whether a mnemonic names an assembler directive.
func isDirective(mn string) bool {
	switch strings.ToLower(mn) {
	case "bits", "org", "db", "dw":
		return true
	}
	return false
}

// directiveOrg returns the new location counter for an org directive.
func (asm *Assembler) directiveOrg(n *Node) (uint32, bool, error) {
	if strings.ToLower(n.Parts[0]) != "org" {
		return 0, false, nil
	}
	if len(n.Parts) != 2 {
		return 0, false, fmt.Errorf("line %d: org requires an address", n.Line)
	}
	v, err := parseConstant(n.Parts[1])
	if err != nil || v < 0 {
		return 0, false, fmt.Errorf("line %d: invalid org address '%s'", n.Line, n.Parts[1])
	}
	return uint32(v), true, nil
}

// getDirectiveSize calculates the byte size of a directive for the sizing pass.
func (asm *Assembler) getDirectiveSize(n *Node) (uint32, error) {
	dir := strings.ToLower(n.Parts[0])

	switch dir {
	case "bits":
		if len(n.Parts) != 2 || strings.TrimSpace(n.Parts[1]) != "16" {
			return 0, fmt.Errorf("only bits 16 is supported")
		}
		return 0, nil

	case "db", "dw":
		if len(n.Parts) < 2 {
			return 0, fmt.Errorf("%s requires at least one value", n.Parts[0])
		}
		return calculateDataSize(dir, n.Parts[1])

	default:
		return 0, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

// generateDirectiveCode generates the binary data for assembler directives.
func (asm *Assembler) generateDirectiveCode(n *Node) ([]byte, error) {
	dir := strings.ToLower(n.Parts[0])

	switch dir {
	case "bits":
		return nil, nil

	case "db", "dw":
		if len(n.Parts) < 2 {
			return nil, fmt.Errorf("%s requires at least one value", n.Parts[0])
		}
		return assembleData(dir, n.Parts[1])

	default:
		return nil, fmt.Errorf("unknown directive: %s", n.Parts[0])
	}
}

// calculateDataSize determines the byte size of a db or dw directive's data.
func calculateDataSize(directive, values string) (uint32, error) {
	tokens, err := splitDataValues(values)
	if err != nil {
		return 0, err
	}

	elementSize := getElementSize(directive)
	var size uint32
	for _, tok := range tokens {
		if tok.Quoted {
			size += uint32(len(tok.Value))
		} else {
			size += elementSize
		}
	}
	return size, nil
}

// assembleData generates the bytes for db and dw. Words are little-endian.
func assembleData(directive, values string) ([]byte, error) {
	tokens, err := splitDataValues(values)
	if err != nil {
		return nil, err
	}

	elementSize := getElementSize(directive)
	var buf []byte
	var words []uint16

	for _, tok := range tokens {
		if tok.Quoted {
			buf = append(buf, cpu.WordsToBytes(words)...)
			words = words[:0]
			buf = append(buf, []byte(tok.Value)...)
			continue
		}

		val, err := parseConstant(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid constant '%s': %v", tok.Value, err)
		}

		switch elementSize {
		case 1:
			if val < -0x80 || val > 0xFF {
				return nil, fmt.Errorf("value %d out of range for db", val)
			}
			buf = append(buf, byte(val))
		case 2:
			if val < -0x8000 || val > 0xFFFF {
				return nil, fmt.Errorf("value %d out of range for dw", val)
			}
			words = append(words, uint16(val))
		}
	}

	return append(buf, cpu.WordsToBytes(words)...), nil
}

type dataToken struct {
	Value  string
	Quoted bool
}

// splitDataValues breaks a db or dw value list at the commas outside quotes.
// Every item is a single quoted string or a single constant.
func splitDataValues(s string) ([]dataToken, error) {
	var items []string
	var quote rune
	start := 0
	for i, c := range s {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			items = append(items, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string in '%s'", s)
	}
	items = append(items, s[start:])

	tokens := make([]dataToken, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("empty value in '%s'", s)
		}
		q := item[0]
		if q != '\'' && q != '"' {
			tokens = append(tokens, dataToken{Value: item})
			continue
		}
		if len(item) < 2 || item[len(item)-1] != q || strings.IndexByte(item[1:len(item)-1], q) >= 0 {
			return nil, fmt.Errorf("malformed string %s", item)
		}
		tokens = append(tokens, dataToken{Value: item[1 : len(item)-1], Quoted: true})
	}
	return tokens, nil
}

// getElementSize returns element size in bytes for data directives.
func getElementSize(directive string) uint32 {
	if directive == "dw" {
		return 2
	}
	return 1
}
