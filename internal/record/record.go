// Package record implements the Flattener and Reconstructor (§4.8): a
// bidirectional mapping between a Node tree and a flat, pre-order
// sequence of Records keyed by id and parent_id, the shape the
// Persistence Adapter interface (internal/store) is built around.
package record

import (
	"fmt"
	"sort"

	uuid "github.com/satori/go.uuid"

	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// Record is one flattened Node: id/parent_id/name/value/operator/
// child_index per §6's reference schema, plus Labels — a superset
// field carrying the CaseLabels metadata Lookup/UncertainLookup/
// Conditional nodes need to remain simplifiable and renderable after
// a round trip, which the bare reference schema columns don't carry.
type Record struct {
	ID         uuid.UUID
	ParentID   uuid.UUID
	HasParent  bool
	ChildIndex int
	Name       string
	Named      bool
	Value      value.Value
	Operator   string
	Labels     *tree.CaseLabels
}

// Flatten yields one Record per Node in root's tree, pre-order, with
// child_index assigned by each node's position among its siblings.
// Flatten is stable: repeated calls on the same tree produce an
// identical sequence.
func Flatten(root *tree.Node) []Record {
	var out []Record
	var walk func(n *tree.Node, parent uuid.UUID, hasParent bool, idx int)
	walk = func(n *tree.Node, parent uuid.UUID, hasParent bool, idx int) {
		name, named := n.Name()
		out = append(out, Record{
			ID:         n.ID(),
			ParentID:   parent,
			HasParent:  hasParent,
			ChildIndex: idx,
			Name:       name,
			Named:      named,
			Value:      n.Value(),
			Operator:   n.Operator().Tag(),
			Labels:     n.CaseLabels(),
		})
		for i, child := range n.Operands() {
			walk(child, n.ID(), true, i)
		}
	}
	walk(root, uuid.UUID{}, false, 0)
	return out
}

// Reconstruct inverts Flatten: reconstruct(flatten(t)) reproduces t up
// to node identity (values, operators, names, operand order and tree
// shape). Malformed input — cycles, dangling parent references, or
// more than one root — fails with IntegrityError.
func Reconstruct(records []Record) (*tree.Node, error) {
	if len(records) == 0 {
		return nil, xerrors.IntegrityError.New("no records to reconstruct")
	}

	byID := make(map[uuid.UUID]Record, len(records))
	childrenOf := make(map[uuid.UUID][]Record)
	var roots []Record

	for _, r := range records {
		if _, dup := byID[r.ID]; dup {
			return nil, xerrors.IntegrityError.New(fmt.Sprintf("duplicate id %s", r.ID))
		}
		byID[r.ID] = r
		if r.HasParent {
			childrenOf[r.ParentID] = append(childrenOf[r.ParentID], r)
		} else {
			roots = append(roots, r)
		}
	}
	if len(roots) != 1 {
		return nil, xerrors.IntegrityError.New(fmt.Sprintf("expected exactly one root, found %d", len(roots)))
	}
	for parentID := range childrenOf {
		if _, ok := byID[parentID]; !ok {
			return nil, xerrors.IntegrityError.New(fmt.Sprintf("dangling parent reference %s", parentID))
		}
	}

	visited := make(map[uuid.UUID]bool, len(records))
	var build func(r Record) (*tree.Node, error)
	build = func(r Record) (*tree.Node, error) {
		if visited[r.ID] {
			return nil, xerrors.IntegrityError.New(fmt.Sprintf("cycle detected at %s", r.ID))
		}
		visited[r.ID] = true

		kids := append([]Record{}, childrenOf[r.ID]...)
		sort.Slice(kids, func(i, j int) bool { return kids[i].ChildIndex < kids[j].ChildIndex })

		operands := make([]*tree.Node, len(kids))
		for i, k := range kids {
			child, err := build(k)
			if err != nil {
				return nil, err
			}
			operands[i] = child
		}

		op, err := tree.OperatorFromTag(r.Operator)
		if err != nil {
			return nil, xerrors.IntegrityError.New(err.Error())
		}
		return tree.WithID(r.ID, op, r.Name, r.Named, r.Value, operands, r.Labels), nil
	}

	root, err := build(roots[0])
	if err != nil {
		return nil, err
	}
	if len(visited) != len(records) {
		return nil, xerrors.IntegrityError.New("records unreachable from root form a cycle or a disconnected forest")
	}
	return root, nil
}
