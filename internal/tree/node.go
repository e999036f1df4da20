// Package tree implements the Node model: immutable expression-tree
// vertices tagged by Operator, each carrying its already-computed
// Value, optional binding name, and ordered operand references.
//
// Nodes are built once by the builder package and never mutated
// afterward; Simplify, Render and Flatten all read them without
// synchronization, which is safe once construction (a single
// goroutine's affair) has finished.
package tree

import (
	"github.com/mitchellh/hashstructure"
	uuid "github.com/satori/go.uuid"

	"xplain/internal/value"
)

// CaseLabels carries the auxiliary operand metadata §3 reserves for
// Lookup, UncertainLookup and Conditional nodes: the candidate keys a
// Lookup chose among, the key actually selected, whether a default was
// taken, and which Conditional branch fired.
type CaseLabels struct {
	Keys         []value.Value
	SelectedKey  value.Value
	DefaultTaken bool
	BranchIndex  int

	// Reduced marks a node the Simplifier has already rewritten. On a
	// Conditional, its operands are no longer (cond, then) pairs plus a
	// trailing else, but RetainedConds leading conditions followed by
	// exactly one selected branch expression. On a False-valued And or
	// Or, the node is the dual rewrite of a False Or or And.
	Reduced       bool
	RetainedConds int
}

// Node is an immutable expression-tree vertex. All fields are set at
// construction time by the builder package and never modified after.
type Node struct {
	id         uuid.UUID
	name       string
	named      bool
	val        value.Value
	op         Operator
	operands   []*Node
	caseLabels *CaseLabels
}

// NewLeaf constructs a terminal operand: a named or literal binding
// with no operands.
func NewLeaf(name string, named bool, v value.Value) *Node {
	return &Node{id: uuid.NewV4(), name: name, named: named, val: v, op: Leaf}
}

// New constructs an internal node from already-evaluated operands.
func New(op Operator, v value.Value, operands ...*Node) *Node {
	return &Node{id: uuid.NewV4(), op: op, val: v, operands: operands}
}

// NewNamed is New with an explicit binding name attached to the result
// (a host may name any node, not only leaves).
func NewNamed(op Operator, name string, v value.Value, operands ...*Node) *Node {
	return &Node{id: uuid.NewV4(), op: op, name: name, named: true, val: v, operands: operands}
}

// NewWithCase is New plus the CaseLabels metadata Lookup/UncertainLookup/
// Conditional nodes carry.
func NewWithCase(op Operator, v value.Value, operands []*Node, labels *CaseLabels) *Node {
	return &Node{id: uuid.NewV4(), op: op, val: v, operands: operands, caseLabels: labels}
}

// WithID rebuilds a node carrying an id fixed by the caller — used
// only by the Reconstructor (§4.8), which must preserve stored ids
// rather than mint fresh ones.
func WithID(id uuid.UUID, op Operator, name string, named bool, v value.Value, operands []*Node, labels *CaseLabels) *Node {
	return &Node{id: id, op: op, name: name, named: named, val: v, operands: operands, caseLabels: labels}
}

func (n *Node) ID() uuid.UUID           { return n.id }
func (n *Node) Name() (string, bool)    { return n.name, n.named }
func (n *Node) Value() value.Value      { return n.val }
func (n *Node) Operator() Operator      { return n.op }
func (n *Node) Operands() []*Node       { return n.operands }
func (n *Node) CaseLabels() *CaseLabels { return n.caseLabels }
func (n *Node) IsLeaf() bool            { return n.op == Leaf }

// Fingerprint hashes a leaf's name and value so the builder layer can
// intern identical bindings (§3: "an implementation may intern leaves
// provided external semantics are preserved").
func (n *Node) Fingerprint() (uint64, error) {
	return hashstructure.Hash(struct {
		Name  string
		Named bool
		Value string
	}{n.name, n.named, n.val.String()}, nil)
}
