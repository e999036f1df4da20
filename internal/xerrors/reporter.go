package xerrors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position is the minimal source location a Reporter needs: line and
// column are 1-based, matching participle's lexer.Position.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Reporter formats xplainscript parse errors with Rust-like caret
// styling, trimmed down to what a single-line expression grammar
// needs: no error codes, suggestions, or multi-note help text.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatParseError renders "error: <message>" followed by the
// offending line and a caret under the reported column.
func (r *Reporter) FormatParseError(pos Position, message string) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	b.WriteString(fmt.Sprintf("%s: %s\n", red("error"), message))

	width := lineNumberWidth(pos.Line)
	indent := strings.Repeat(" ", width)
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, pos.Line, pos.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if pos.Line > 0 && pos.Line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, pos.Line)), dim("│"), r.lines[pos.Line-1]))
		col := pos.Column - 1
		if col < 0 {
			col = 0
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", indent, dim("│"), strings.Repeat(" ", col), red("^")))
	}

	return b.String()
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}
