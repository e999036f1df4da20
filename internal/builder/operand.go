// Package builder implements the fluent construction surface over the
// Node model: Numeric/Int/Float/Bool/Not entry points, arithmetic,
// comparison and boolean chaining with same-operator flattening and
// comparison flipping, the typed-state conditional grammar, and
// Lookup/UncertainLookup.
//
// Every call that can fail returns (result, error) synchronously, and a
// failed call never touches the receiver it was called on — callers
// keep using the last-known-good builder.
package builder

import (
	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// Operand is either a fresh name=value binding or a previously built
// node — the two shapes §4.2 allows a builder call to take an operand
// as. NumericBuilder and BoolBuilder also satisfy Operand, so the
// result of one chain can be threaded directly into another without an
// intermediate Node() call.
type Operand interface {
	resolve() (*tree.Node, error)
}

// Binding is a name=value operand: a fresh leaf is minted from it at
// resolve time.
type Binding struct {
	name string
	val  value.Value
}

// Bind constructs a named literal operand.
func Bind(name string, v value.Value) Binding {
	return Binding{name: name, val: v}
}

func (b Binding) resolve() (*tree.Node, error) {
	if b.name == "" {
		return nil, xerrors.ArgumentError.New("binding requires a non-empty name")
	}
	return tree.NewLeaf(b.name, true, b.val), nil
}

// Ref wraps an already-constructed node as an operand.
type Ref struct {
	node *tree.Node
}

// NodeRef lifts an existing node into an Operand, e.g. one produced by
// the record Reconstructor or handed across a store round-trip.
func NodeRef(n *tree.Node) Ref {
	return Ref{node: n}
}

func (r Ref) resolve() (*tree.Node, error) {
	if r.node == nil {
		return nil, xerrors.ArgumentError.New("nil node operand")
	}
	return r.node, nil
}
