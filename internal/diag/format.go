package diag

import (
	"fmt"
	"strings"
)

// Format renders d with a file:line:col header, the offending source line,
// and a caret under the failing column — the teacher's
// internal/errors.CompilerError.Format shape, adapted to a closed phase/kind
// pair instead of a single free-form message.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s error in %s:%d:%d\n", d.Kind, d.File, d.Position.Line, d.Position.Column)
	} else {
		fmt.Fprintf(&sb, "%s error at line %d:%d\n", d.Kind, d.Position.Line, d.Position.Column)
	}

	if line := sourceLine(d.Source, d.Position.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Position.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+maxInt(d.Position.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
