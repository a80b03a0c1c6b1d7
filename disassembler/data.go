package disassembler

import (
	"fmt"
	"slices"
	"strings"
)

// minStringLen is the shortest printable run shown as a quoted string.
const minStringLen = 4

// isStringByte reports whether a byte can sit inside a quoted db string.
// Quotes and the comment character are left to the hex form.
func isStringByte(b byte) bool {
	return b >= 0x20 && b <= 0x7E && b != '\'' && b != '"' && b != ';'
}

// formatData renders raw bytes as db directives: printable runs as strings,
// everything else as hex.
func formatData(data []byte) string {
	var sb strings.Builder
	n := len(data)

	i := 0
	for i < n {
		// Find the next printable run long enough to quote.
		start := i
		for start < n {
			end := start
			for end < n && isStringByte(data[end]) {
				end++
			}
			if end-start >= minStringLen {
				break
			}
			if end == start {
				start++
			} else {
				start = end
			}
		}
		sb.WriteString(formatHexBytes(data[i:start]))
		if start == n {
			break
		}

		end := start
		for end < n && isStringByte(data[end]) {
			end++
		}
		fmt.Fprintf(&sb, "db '%s'\n", data[start:end])
		i = end
	}

	return sb.String()
}

// hexPerLine is how many raw bytes share one db line.
const hexPerLine = 16

// formatHexBytes renders bytes as hex db lines.
func formatHexBytes(data []byte) string {
	var sb strings.Builder
	for line := range slices.Chunk(data, hexPerLine) {
		vals := make([]string, len(line))
		for i, b := range line {
			vals[i] = fmt.Sprintf("0x%02x", b)
		}
		sb.WriteString("db " + strings.Join(vals, ", ") + "\n")
	}
	return sb.String()
}
