// Package store implements the Persistence Adapter interface (§4.9)
// against four concrete backends: an in-memory map for tests and the
// CLI's default, and three real collaborators (bolt, redis, mongo)
// chosen to give the record-layer wiring somewhere real to land.
//
// The core never opens a connection or manages a transaction beyond
// the atomicity contract; every adapter here is a host-side
// collaborator exercising exactly the two operations the core expects.
package store

import (
	"context"

	uuid "github.com/satori/go.uuid"

	"xplain/internal/record"
)

// Sink accepts an atomic batch insert: all records land, or none do.
type Sink interface {
	Write(ctx context.Context, records []record.Record) error
}

// Source returns the closure of records reachable from rootID by
// parent_id.
type Source interface {
	ReadTree(ctx context.Context, rootID uuid.UUID) ([]record.Record, error)
}

// Adapter is the combined collaborator interface a store backend
// satisfies.
type Adapter interface {
	Sink
	Source
}
