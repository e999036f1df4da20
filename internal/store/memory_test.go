package store

import (
	"context"
	"testing"

	uuid "github.com/satori/go.uuid"

	"xplain/internal/builder"
	"xplain/internal/record"
	"xplain/internal/render"
	"xplain/internal/value"
)

// ============================================================================
// Memory adapter round trip
// ============================================================================

func TestMemoryWriteReadTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	b, err := builder.Int(builder.Bind("a", value.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.Times(builder.Bind("b", value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}
	original := b.Node()
	records := record.Flatten(original)

	if err := m.Write(ctx, records); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := m.ReadTree(ctx, original.ID())
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	rebuilt, err := record.Reconstruct(got)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if render.Render(rebuilt) != render.Render(original) {
		t.Fatalf("round trip changed rendering: got %q want %q", render.Render(rebuilt), render.Render(original))
	}
}

func TestMemoryReadTreeUnknownRootFails(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.ReadTree(ctx, uuid.NewV4()); err == nil {
		t.Fatal("expected KeyNotFound for a root never written")
	}
}

func TestMemoryWriteRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	b, err := builder.Bool(builder.Bind("x", value.Bool(true)))
	if err != nil {
		t.Fatal(err)
	}
	records := record.Flatten(b.Node())

	if err := m.Write(ctx, records); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := m.Write(ctx, records); err == nil {
		t.Fatal("expected IntegrityError writing the same ids twice")
	}
}
