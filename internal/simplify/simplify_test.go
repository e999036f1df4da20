package simplify

import (
	"testing"

	"xplain/internal/builder"
	"xplain/internal/tree"
	"xplain/internal/value"
)

func TestSimplifyOrTrueKeepsOnlyTrueCauses(t *testing.T) {
	b, err := builder.Bool(builder.Bind("x", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Or(builder.Bind("y", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Or(builder.Bind("z", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(b.Node())
	if v, _ := s.Value().Bool(); !v {
		t.Fatal("expected True")
	}
	if s.Operator() != tree.Or {
		t.Fatalf("expected Or, got %s", s.Operator())
	}
	if len(s.Operands()) != 2 {
		t.Fatalf("expected only the two True causes, got %d", len(s.Operands()))
	}
}

func TestSimplifyOrFalseRewritesToAnd(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(false)))
	b, _ = b.Or(builder.Bind("y", value.Bool(false)))
	b, err := b.Or(builder.Bind("z", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(b.Node())
	if v, _ := s.Value().Bool(); v {
		t.Fatal("expected False")
	}
	if s.Operator() != tree.And {
		t.Fatalf("Or/False must rewrite to And, got %s", s.Operator())
	}
	if len(s.Operands()) != 3 {
		t.Fatalf("all operands contributed, expected 3, got %d", len(s.Operands()))
	}
}

func TestSimplifyAndFalseRewritesToOrWithCausesOnly(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, _ = b.And(builder.Bind("y", value.Bool(false)))
	b, err := b.And(builder.Bind("z", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(b.Node())
	if v, _ := s.Value().Bool(); v {
		t.Fatal("expected False")
	}
	if s.Operator() != tree.Or {
		t.Fatalf("And/False must rewrite to Or, got %s", s.Operator())
	}
	if len(s.Operands()) != 2 {
		t.Fatalf("expected only the two False causes, got %d", len(s.Operands()))
	}
}

func TestSimplifyAndTrueKeepsEverything(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, err := b.And(builder.Bind("y", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(b.Node())
	if s.Operator() != tree.And {
		t.Fatalf("expected And preserved, got %s", s.Operator())
	}
	if len(s.Operands()) != 2 {
		t.Fatalf("expected both operands kept, got %d", len(s.Operands()))
	}
}

func TestSimplifyCollapsesSingleCause(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, err := b.And(builder.Bind("y", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(b.Node())
	if s.Operator() != tree.Leaf {
		t.Fatalf("single cause should collapse to the bare leaf, got %s", s.Operator())
	}
}

func TestSimplifyErasesNot(t *testing.T) {
	b, err := builder.Not(builder.Bind("x", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	s := Simplify(b.Node())
	if s.Operator() == tree.Not {
		t.Fatal("Not must never appear post-simplify")
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, _ = b.And(builder.Bind("y", value.Bool(false)))
	b, err := b.And(builder.Bind("z", value.Bool(false)))
	if err != nil {
		t.Fatal(err)
	}

	once := Simplify(b.Node())
	twice := Simplify(once)
	if once.Operator() != twice.Operator() {
		t.Fatalf("not idempotent: %s vs %s", once.Operator(), twice.Operator())
	}
	if len(once.Operands()) != len(twice.Operands()) {
		t.Fatalf("not idempotent: operand counts %d vs %d", len(once.Operands()), len(twice.Operands()))
	}
}

func TestSimplifyConditionalKeepsOnlyTakenBranch(t *testing.T) {
	condA, _ := builder.Bool(builder.Bind("a", value.Bool(false)))
	condB, _ := builder.Bool(builder.Bind("b", value.Bool(true)))

	ic, err := builder.If(condA)
	if err != nil {
		t.Fatal(err)
	}
	pc, err := ic.Then(builder.Bind("x", value.Int(1)))
	if err != nil {
		t.Fatal(err)
	}
	ic2, err := pc.Elif(condB)
	if err != nil {
		t.Fatal(err)
	}
	pc2, err := ic2.Then(builder.Bind("y", value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	node, err := pc2.Else(builder.Bind("z", value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}

	s := Simplify(node)
	if i, ok := s.Value().Int(); !ok || i != 2 {
		t.Fatalf("expected value 2, got %v", s.Value())
	}
	if !s.CaseLabels().Reduced {
		t.Fatal("expected Reduced CaseLabels")
	}
	if len(s.Operands()) != 3 {
		t.Fatalf("expected 2 retained conditions + 1 selected expr, got %d", len(s.Operands()))
	}
}
