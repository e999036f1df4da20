package store

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sasha-s/go-deadlock"

	"xplain/internal/record"
	"xplain/internal/xerrors"
)

// Memory is the default, in-process adapter: every record keyed by id,
// with a secondary index from parent id to child ids. Reads and writes
// are guarded by a deadlock-checking mutex rather than a bare
// sync.RWMutex, matching the corpus's habit of using go-deadlock for
// any map a host might otherwise forget to unlock under a panic path.
type Memory struct {
	mu       deadlock.RWMutex
	byID     map[uuid.UUID]record.Record
	children map[uuid.UUID][]uuid.UUID
}

func NewMemory() *Memory {
	return &Memory{
		byID:     make(map[uuid.UUID]record.Record),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *Memory) Write(ctx context.Context, records []record.Record) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.memory.write")
	defer span.Finish()

	m.mu.Lock()
	defer m.mu.Unlock()

	// All-or-nothing: stage into copies and only commit once every
	// record in the batch has been validated.
	staged := make(map[uuid.UUID]record.Record, len(records))
	stagedChildren := make(map[uuid.UUID][]uuid.UUID)
	for _, r := range records {
		if _, exists := m.byID[r.ID]; exists {
			return xerrors.IntegrityError.New(fmt.Sprintf("record %s already written", r.ID))
		}
		staged[r.ID] = r
		if r.HasParent {
			stagedChildren[r.ParentID] = append(stagedChildren[r.ParentID], r.ID)
		}
	}
	for id, r := range staged {
		m.byID[id] = r
	}
	for parent, kids := range stagedChildren {
		m.children[parent] = append(m.children[parent], kids...)
	}
	return nil
}

func (m *Memory) ReadTree(ctx context.Context, rootID uuid.UUID) ([]record.Record, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "store.memory.read_tree")
	defer span.Finish()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.byID[rootID]; !ok {
		return nil, xerrors.KeyNotFound.New(rootID)
	}

	var out []record.Record
	var walk func(id uuid.UUID)
	walk = func(id uuid.UUID) {
		out = append(out, m.byID[id])
		for _, childID := range m.children[id] {
			walk(childID)
		}
	}
	walk(rootID)
	return out, nil
}
