package builder

import (
	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// NumericBuilder wraps an Int- or Float-valued node mid-chain.
type NumericBuilder struct {
	node *tree.Node
}

func (b *NumericBuilder) resolve() (*tree.Node, error) { return b.node, nil }

// Node returns the node built so far.
func (b *NumericBuilder) Node() *tree.Node { return b.node }

// Numeric enters a chain from either an Int or a Float operand.
func Numeric(op Operand) (*NumericBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireNumeric(n); err != nil {
		return nil, err
	}
	return &NumericBuilder{node: n}, nil
}

// Int enters a chain, requiring the operand already hold an Int.
func Int(op Operand) (*NumericBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	if n.Value().Kind() != value.KindInt {
		return nil, xerrors.TypeError.New(n.Value().Kind(), value.KindInt)
	}
	return &NumericBuilder{node: n}, nil
}

// Float enters a chain, requiring the operand already hold a Float.
func Float(op Operand) (*NumericBuilder, error) {
	n, err := op.resolve()
	if err != nil {
		return nil, err
	}
	if n.Value().Kind() != value.KindFloat {
		return nil, xerrors.TypeError.New(n.Value().Kind(), value.KindFloat)
	}
	return &NumericBuilder{node: n}, nil
}

func (b *NumericBuilder) arith(op tree.Operator, ops ...Operand) (*NumericBuilder, error) {
	rights := make([]*tree.Node, 0, len(ops))
	for _, o := range ops {
		n, err := o.resolve()
		if err != nil {
			return nil, err
		}
		if err := requireNumeric(n); err != nil {
			return nil, err
		}
		rights = append(rights, n)
	}
	newNode, err := combine(op, b.node, rights)
	if err != nil {
		return nil, err
	}
	return &NumericBuilder{node: newNode}, nil
}

// Plus, Times and And/Or (on BoolBuilder) flatten; Minus and DividedBy
// never do — each call nests one binary (or left-associative n-ary)
// level deeper (§4.2).
func (b *NumericBuilder) Plus(ops ...Operand) (*NumericBuilder, error) {
	return b.arith(tree.Plus, ops...)
}

func (b *NumericBuilder) Minus(ops ...Operand) (*NumericBuilder, error) {
	return b.arith(tree.Minus, ops...)
}

func (b *NumericBuilder) Times(ops ...Operand) (*NumericBuilder, error) {
	return b.arith(tree.Times, ops...)
}

func (b *NumericBuilder) DividedBy(ops ...Operand) (*NumericBuilder, error) {
	return b.arith(tree.DividedBy, ops...)
}

func (b *NumericBuilder) cmp(op tree.Operator, rhs Operand) (*BoolBuilder, error) {
	right, err := rhs.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireNumeric(right); err != nil {
		return nil, err
	}
	n, err := compare(op, b.node, right)
	if err != nil {
		return nil, err
	}
	return &BoolBuilder{node: n}, nil
}

func (b *NumericBuilder) Eq(rhs Operand) (*BoolBuilder, error)  { return b.cmp(tree.Eq, rhs) }
func (b *NumericBuilder) Neq(rhs Operand) (*BoolBuilder, error) { return b.cmp(tree.Neq, rhs) }
func (b *NumericBuilder) Gt(rhs Operand) (*BoolBuilder, error)  { return b.cmp(tree.Gt, rhs) }
func (b *NumericBuilder) Gte(rhs Operand) (*BoolBuilder, error) { return b.cmp(tree.Gte, rhs) }
func (b *NumericBuilder) Lt(rhs Operand) (*BoolBuilder, error)  { return b.cmp(tree.Lt, rhs) }
func (b *NumericBuilder) Lte(rhs Operand) (*BoolBuilder, error) { return b.cmp(tree.Lte, rhs) }

// If opens the two-branch ternary specialization: expr.If(cond).Else(other).
func (b *NumericBuilder) If(cond Operand) (*Ternary, error) {
	return newTernary(b.node, cond)
}
