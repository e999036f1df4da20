package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestStartRendersEachLine(t *testing.T) {
	in := strings.NewReader("a=2 * b=3\n")
	var out bytes.Buffer

	Start(in, &out)

	got := out.String()
	if !strings.Contains(got, "6 because (a := 2) × (b := 3)") {
		t.Fatalf("expected rendered expression in output, got %q", got)
	}
}

func TestStartReportsParseError(t *testing.T) {
	in := strings.NewReader("a= +\n")
	var out bytes.Buffer

	Start(in, &out)

	if !strings.Contains(out.String(), "error") {
		t.Fatalf("expected a syntax error message in output, got %q", out.String())
	}
}

func TestStartSurvivesBlankLines(t *testing.T) {
	in := strings.NewReader("\na=1\n")
	var out bytes.Buffer

	Start(in, &out)

	if !strings.Contains(out.String(), "1 because (a := 1)") {
		t.Fatalf("expected rendered expression after blank line, got %q", out.String())
	}
}
