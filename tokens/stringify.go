package tokens

import "strings"

// Stringify renders lines one per row, tokens separated by a single space.
func Stringify(lines []Line) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line.String())
	}
	return sb.String()
}
