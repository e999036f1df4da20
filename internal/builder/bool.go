package builder

import (
	"xplain/internal/tree"
	"xplain/internal/value"
)

// BoolBuilder wraps a Bool-valued node mid-chain.
type BoolBuilder struct {
	node *tree.Node
}

func (b *BoolBuilder) resolve() (*tree.Node, error) { return b.node, nil }

// Node returns the node built so far.
func (b *BoolBuilder) Node() *tree.Node { return b.node }

// Bool enters a chain from a Bool operand.
func Bool(op Operand) (*BoolBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(n); err != nil {
		return nil, err
	}
	return &BoolBuilder{node: n}, nil
}

// Not negates a Bool operand. The result is an explicit Not node: its
// own Value is the negation, but its sole operand keeps its original
// value unchanged, so rendering the operand's own clause still reads
// the pre-negation binding (§4.6's Renderer notes).
func Not(op Operand) (*BoolBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(n); err != nil {
		return nil, err
	}
	b, _ := n.Value().Bool()
	return &BoolBuilder{node: tree.New(tree.Not, value.Bool(!b), n)}, nil
}

func (b *BoolBuilder) boolOp(op tree.Operator, first Operand, rest []Operand) (*BoolBuilder, error) {
	ops := append([]Operand{first}, rest...)
	rights := make([]*tree.Node, 0, len(ops))
	for _, o := range ops {
		n, err := o.resolve()
		if err != nil {
			return nil, err
		}
		if err := requireBool(n); err != nil {
			return nil, err
		}
		rights = append(rights, n)
	}
	newNode, err := combine(op, b.node, rights)
	if err != nil {
		return nil, err
	}
	return &BoolBuilder{node: newNode}, nil
}

// And accepts one or more operands; passing more than one is sugar for
// and_'ing them together before combining with the receiver (§4.3).
func (b *BoolBuilder) And(first Operand, rest ...Operand) (*BoolBuilder, error) {
	return b.boolOp(tree.And, first, rest)
}

func (b *BoolBuilder) Or(first Operand, rest ...Operand) (*BoolBuilder, error) {
	return b.boolOp(tree.Or, first, rest)
}

func (b *BoolBuilder) Eq(rhs Operand) (*BoolBuilder, error) {
	right, err := rhs.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(right); err != nil {
		return nil, err
	}
	n, err := compare(tree.Eq, b.node, right)
	if err != nil {
		return nil, err
	}
	return &BoolBuilder{node: n}, nil
}

func (b *BoolBuilder) Neq(rhs Operand) (*BoolBuilder, error) {
	right, err := rhs.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(right); err != nil {
		return nil, err
	}
	n, err := compare(tree.Neq, b.node, right)
	if err != nil {
		return nil, err
	}
	return &BoolBuilder{node: n}, nil
}

// If opens the two-branch ternary specialization: expr.If(cond).Else(other).
func (b *BoolBuilder) If(cond Operand) (*Ternary, error) {
	return newTernary(b.node, cond)
}

// IsNotNull reports whether op's value is not Null, represented
// internally as a comparison against a Null leaf so it participates in
// the flip rule and the Renderer like any other comparison (resolves
// the open question §4.2 left unspecified: there is no dedicated
// IsNotNull operator tag, only a Neq/Eq pair against Null).
func IsNotNull(op Operand) (*BoolBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	nullNode := tree.NewLeaf("", false, value.Null())
	result := !n.Value().IsNull()
	finalOp := tree.Neq
	if !result {
		finalOp = tree.Eq
	}
	return &BoolBuilder{node: tree.New(finalOp, value.Bool(result), n, nullNode)}, nil
}
