package render

import (
	"testing"

	"xplain/internal/builder"
	"xplain/internal/simplify"
	"xplain/internal/value"
)

func TestRenderDivisionChain(t *testing.T) {
	b, err := builder.Int(builder.Bind("a", value.Int(0)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Plus(builder.Bind("b", value.Int(1)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Minus(builder.Bind("c", value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}

	outer, err := builder.Int(b)
	if err != nil {
		t.Fatal(err)
	}
	outer, err = outer.Times(builder.Bind("d", value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}
	outer, err = outer.DividedBy(builder.Bind("e", value.Int(4)))
	if err != nil {
		t.Fatal(err)
	}

	got := Render(outer.Node())
	want := "-0.75 because ((((a := 0) + (b := 1)) - (c := 2)) × (d := 3)) / (e := 4)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderComparisonFlip(t *testing.T) {
	n, _ := builder.Numeric(builder.Bind("a", value.Int(4)))
	cmp, err := n.Gt(builder.Bind("b", value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Render(cmp.Node()), "True because (a := 4) > (b := 2)"; got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}

	n2, _ := builder.Numeric(builder.Bind("a", value.Int(2)))
	cmp2, err := n2.Gt(builder.Bind("b", value.Int(4)))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Render(cmp2.Node()), "False because (a := 2) ≤ (b := 4)"; got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderOrTrueAfterSimplify(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(false)))
	b, _ = b.Or(builder.Bind("y", value.Bool(true)))
	b, err := b.Or(builder.Bind("z", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	got := Render(simplify.Simplify(b.Node()))
	want := "True because (y := True) or (z := True)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderOrFalseRewritesToAnd(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(false)))
	b, _ = b.Or(builder.Bind("y", value.Bool(false)))
	b, err := b.Or(builder.Bind("z", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}
	got := Render(simplify.Simplify(b.Node()))
	want := "False because (x := False) and (y := False) and (z := False)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderAndFalseRewritesToOr(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, _ = b.And(builder.Bind("y", value.Bool(false)))
	b, err := b.And(builder.Bind("z", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}
	got := Render(simplify.Simplify(b.Node()))
	want := "False because (y := False) or (z := False)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderNotErased(t *testing.T) {
	b, err := builder.Not(builder.Bind("x", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	got := Render(b.Node())
	want := "False because (x := True)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderConditionalAfterSimplify(t *testing.T) {
	condA, _ := builder.Bool(builder.Bind("a", value.Bool(false)))
	condB, _ := builder.Bool(builder.Bind("b", value.Bool(true)))

	ic, _ := builder.If(condA)
	pc, _ := ic.Then(builder.Bind("x", value.Int(1)))
	ic2, _ := pc.Elif(condB)
	pc2, _ := ic2.Then(builder.Bind("y", value.Int(2)))
	node, err := pc2.Else(builder.Bind("z", value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}

	got := Render(simplify.Simplify(node))
	want := "2 because (y := 2) when (a := False) and (b := True)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestRenderConditionalElseBranch(t *testing.T) {
	condA, _ := builder.Bool(builder.Bind("a", value.Bool(false)))
	ic, _ := builder.If(condA)
	pc, _ := ic.Then(builder.Bind("x", value.Int(1)))
	node, err := pc.Else(builder.Bind("z", value.Int(9)))
	if err != nil {
		t.Fatal(err)
	}

	got := Render(simplify.Simplify(node))
	want := "9 because (z := 9) when not (a := False)"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}
