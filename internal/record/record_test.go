package record

import (
	"testing"

	uuid "github.com/satori/go.uuid"

	"xplain/internal/builder"
	"xplain/internal/render"
	"xplain/internal/value"
)

func TestFlattenReconstructRoundTrip(t *testing.T) {
	b, err := builder.Int(builder.Bind("a", value.Int(10)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Plus(builder.Bind("b", value.Int(5)))
	if err != nil {
		t.Fatal(err)
	}
	cmp, err := b.Gt(builder.Bind("c", value.Int(1)))
	if err != nil {
		t.Fatal(err)
	}

	original := cmp.Node()
	records := Flatten(original)
	if len(records) != 5 { // Gt, Plus, a, b, c
		t.Fatalf("expected 5 flattened records, got %d", len(records))
	}

	rebuilt, err := Reconstruct(records)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	if render.Render(rebuilt) != render.Render(original) {
		t.Fatalf("round trip changed rendering: got %q want %q", render.Render(rebuilt), render.Render(original))
	}
}

func TestFlattenIsStable(t *testing.T) {
	b, _ := builder.Bool(builder.Bind("x", value.Bool(true)))
	b, err := b.And(builder.Bind("y", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}

	r1 := Flatten(b.Node())
	r2 := Flatten(b.Node())
	if len(r1) != len(r2) {
		t.Fatalf("flatten not stable: %d vs %d records", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].ID != r2[i].ID || r1[i].ChildIndex != r2[i].ChildIndex {
			t.Fatalf("flatten not stable at index %d", i)
		}
	}
}

func TestReconstructRejectsMultipleRoots(t *testing.T) {
	leafA := Record{ID: uuid.NewV4(), Name: "a", Named: true, Value: value.Int(1), Operator: "leaf"}
	leafB := Record{ID: uuid.NewV4(), Name: "b", Named: true, Value: value.Int(2), Operator: "leaf"}
	if _, err := Reconstruct([]Record{leafA, leafB}); err == nil {
		t.Fatal("expected IntegrityError for two roots")
	}
}

func TestReconstructRejectsDanglingParent(t *testing.T) {
	orphan := Record{
		ID:        uuid.NewV4(),
		ParentID:  uuid.NewV4(),
		HasParent: true,
		Name:      "a",
		Named:     true,
		Value:     value.Int(1),
		Operator:  "leaf",
	}
	if _, err := Reconstruct([]Record{orphan}); err == nil {
		t.Fatal("expected IntegrityError for a dangling parent reference")
	}
}

func TestReconstructRejectsCycle(t *testing.T) {
	idA := uuid.NewV4()
	idB := uuid.NewV4()
	a := Record{ID: idA, ParentID: idB, HasParent: true, Name: "a", Named: true, Value: value.Int(1), Operator: "leaf"}
	b := Record{ID: idB, ParentID: idA, HasParent: true, Name: "b", Named: true, Value: value.Int(2), Operator: "leaf"}
	if _, err := Reconstruct([]Record{a, b}); err == nil {
		t.Fatal("expected IntegrityError for a cycle with no root")
	}
}

func TestReconstructRejectsEmptyInput(t *testing.T) {
	if _, err := Reconstruct(nil); err == nil {
		t.Fatal("expected IntegrityError for empty input")
	}
}
