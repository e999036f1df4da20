// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/tliron/commonlog"

	"xplain/internal/render"
	"xplain/internal/simplify"
	"xplain/internal/xerrors"
	"xplain/script"
)

const PROMPT = ">> "

var log = commonlog.GetLogger("xplain.repl")

// Start runs an interactive line-at-a-time loop: each line is parsed as
// an xplainscript program, built, simplified, and rendered.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	line := 0

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		name := fmt.Sprintf("<repl:%d>", line)
		n, err := script.Compile(name, text)
		if err != nil {
			log.Errorf("line %d: %s", line, err)
			if pe, ok := err.(participle.Error); ok {
				pos := pe.Position()
				reporter := xerrors.NewReporter(name, text)
				fmt.Fprint(out, reporter.FormatParseError(xerrors.Position{
					Filename: pos.Filename,
					Line:     pos.Line,
					Column:   pos.Column,
				}, pe.Message()))
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		raw := render.Render(n)
		fmt.Fprintln(out, raw)
		if reduced := render.Render(simplify.Simplify(n)); reduced != raw {
			fmt.Fprintln(out, "simplified:", reduced)
		}
	}
}
