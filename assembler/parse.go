package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/i8086/cpu"
)

// Size keywords carried by an operand.
const (
	SizeNone = 0
	SizeByte = 1
	SizeWord = 2
)

// Operand represents a parsed instruction operand.
type Operand struct {
	Kind  cpu.OperandKind
	Reg   cpu.Register
	Wide  bool
	EA    cpu.EffectiveAddress
	Value int64
	Size  int
	Label string
	Rel   bool
	Raw   string
}

// IsImmediate returns true if this operand is an immediate constant.
func (o *Operand) IsImmediate() bool {
	return o.Kind == cpu.OperandImmediate
}

// IsAccumulator returns true for AX.
func (o *Operand) IsAccumulator() bool {
	return o.Kind == cpu.OperandRegister && o.Reg == cpu.AX && o.Wide
}

var (
	reRelative = regexp.MustCompile(`^\$\s*([+-])\s*([0-9a-fA-Fx]+)$`)
	reLabel    = regexp.MustCompile(`(?i)^[a-z_.][a-z0-9_.]*$`)
	reTerm     = regexp.MustCompile(`([+-]?)\s*([^+\-\s]+)`)
)

// Aliases for condition codes that share an encoding.
var mnemonicAliases = map[string]string{
	"JNE":    "JNZ",
	"JZ":     "JE",
	"JC":     "JB",
	"JNAE":   "JB",
	"JNC":    "JNB",
	"JAE":    "JNB",
	"JNA":    "JBE",
	"JNBE":   "JA",
	"JPE":    "JP",
	"JPO":    "JNP",
	"JNGE":   "JL",
	"JGE":    "JNL",
	"JNG":    "JLE",
	"JNLE":   "JG",
	"LOOPE":  "LOOPZ",
	"LOOPNE": "LOOPNZ",
}

// ParseMnemonic resolves a mnemonic, case-insensitively, to its opcode.
func ParseMnemonic(s string) (cpu.OpCode, error) {
	mn := strings.ToUpper(s)
	if alias, ok := mnemonicAliases[mn]; ok {
		mn = alias
	}
	op, ok := cpu.LookupOpCode(mn)
	if !ok {
		return cpu.OpInvalid, fmt.Errorf("unknown mnemonic: %s", s)
	}
	return op, nil
}

// parseOperand converts an operand string into a structured Operand.
func parseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	raw := s

	size := SizeNone
	if kw, rest, ok := strings.Cut(s, " "); ok {
		switch strings.ToLower(kw) {
		case "byte":
			size = SizeByte
			s = strings.TrimSpace(rest)
		case "word":
			size = SizeWord
			s = strings.TrimSpace(rest)
		}
	}

	if op, ok := tryParseRegister(s); ok {
		if size != SizeNone {
			return Operand{}, fmt.Errorf("size keyword not allowed on register: %s", raw)
		}
		op.Raw = raw
		return op, nil
	}

	if strings.HasPrefix(s, "[") {
		op, err := parseMemory(s)
		if err != nil {
			return Operand{}, err
		}
		op.Size = size
		op.Raw = raw
		return op, nil
	}

	if m := reRelative.FindStringSubmatch(s); m != nil {
		v, err := parseConstant(m[2])
		if err != nil {
			return Operand{}, fmt.Errorf("invalid displacement '%s': %w", s, err)
		}
		if m[1] == "-" {
			v = -v
		}
		return Operand{Kind: cpu.OperandImmediate, Value: v, Rel: true, Raw: raw}, nil
	}

	if v, err := parseConstant(s); err == nil {
		return Operand{Kind: cpu.OperandImmediate, Value: v, Size: size, Raw: raw}, nil
	}

	if reLabel.MatchString(s) {
		return Operand{Kind: cpu.OperandImmediate, Label: strings.ToLower(s), Raw: raw}, nil
	}

	return Operand{}, fmt.Errorf("unknown operand format: %s", raw)
}

// tryParseRegister handles the word and byte register names.
func tryParseRegister(s string) (Operand, bool) {
	r, wide, ok := cpu.LookupRegister(strings.ToUpper(s))
	if !ok {
		return Operand{}, false
	}
	return Operand{Kind: cpu.OperandRegister, Reg: r, Wide: wide}, true
}

// parseMemory handles [BASE + INDEX + disp] in any term order.
func parseMemory(s string) (Operand, error) {
	if !strings.HasSuffix(s, "]") {
		return Operand{}, fmt.Errorf("unterminated memory operand: %s", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Operand{}, fmt.Errorf("empty memory operand")
	}

	ea := cpu.EffectiveAddress{Base: cpu.NoRegister, Index: cpu.NoRegister}
	var disp int64
	for _, m := range reTerm.FindAllStringSubmatch(body, -1) {
		sign, term := m[1], m[2]
		if r, wide, ok := cpu.LookupRegister(strings.ToUpper(term)); ok {
			if sign == "-" || !wide {
				return Operand{}, fmt.Errorf("invalid address register term '%s%s'", sign, term)
			}
			switch r {
			case cpu.BX, cpu.BP:
				if ea.HasBase() {
					return Operand{}, fmt.Errorf("two base registers in %s", s)
				}
				ea.Base = r
			case cpu.SI, cpu.DI:
				if ea.HasIndex() {
					return Operand{}, fmt.Errorf("two index registers in %s", s)
				}
				ea.Index = r
			default:
				return Operand{}, fmt.Errorf("%s cannot address memory", r)
			}
			continue
		}

		v, err := parseConstant(term)
		if err != nil {
			return Operand{}, fmt.Errorf("invalid displacement '%s': %w", term, err)
		}
		if sign == "-" {
			v = -v
		}
		disp += v
		ea.HasDisp = true
	}

	if !ea.Valid() {
		return Operand{}, fmt.Errorf("invalid memory operand: %s", s)
	}
	ea.Disp = uint16(disp)
	return Operand{Kind: cpu.OperandMemory, EA: ea}, nil
}

// parseConstant parses decimal, 0x-prefixed hex and h-suffixed hex numbers.
func parseConstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty constant")
	}
	lower := strings.ToLower(s)
	if strings.HasSuffix(lower, "h") && len(lower) > 1 && lower[0] >= '0' && lower[0] <= '9' {
		return strconv.ParseInt(strings.TrimSuffix(lower, "h"), 16, 64)
	}
	return strconv.ParseInt(lower, 0, 64)
}
