package builder

import (
	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// combine implements same-operator flattening (§4.2/§4.3): a new Plus,
// Times, And or Or node absorbs a left-hand operand of the same kind's
// operands instead of nesting one level deeper, then folds the
// operator's value over the resulting flat operand list.
func combine(op tree.Operator, left *tree.Node, rights []*tree.Node) (*tree.Node, error) {
	operands := make([]*tree.Node, 0, len(rights)+2)
	if op.IsFlattening() && left.Operator() == op {
		operands = append(operands, left.Operands()...)
	} else {
		operands = append(operands, left)
	}
	operands = append(operands, rights...)

	v, err := foldValue(op, operands)
	if err != nil {
		return nil, err
	}
	return tree.New(op, v, operands...), nil
}

func foldValue(op tree.Operator, operands []*tree.Node) (value.Value, error) {
	switch op {
	case tree.Plus:
		acc := operands[0].Value()
		for _, n := range operands[1:] {
			v, err := value.Add(acc, n.Value())
			if err != nil {
				return value.Value{}, err
			}
			acc = v
		}
		return acc, nil
	case tree.Minus:
		acc := operands[0].Value()
		for _, n := range operands[1:] {
			v, err := value.Sub(acc, n.Value())
			if err != nil {
				return value.Value{}, err
			}
			acc = v
		}
		return acc, nil
	case tree.Times:
		acc := operands[0].Value()
		for _, n := range operands[1:] {
			v, err := value.Mul(acc, n.Value())
			if err != nil {
				return value.Value{}, err
			}
			acc = v
		}
		return acc, nil
	case tree.DividedBy:
		acc := operands[0].Value()
		for _, n := range operands[1:] {
			v, err := value.Div(acc, n.Value())
			if err != nil {
				return value.Value{}, err
			}
			acc = v
		}
		return acc, nil
	case tree.And:
		acc := true
		for _, n := range operands {
			b, ok := n.Value().Bool()
			if !ok {
				return value.Value{}, xerrors.TypeError.New(n.Value().Kind(), value.KindBool)
			}
			acc = acc && b
		}
		return value.Bool(acc), nil
	case tree.Or:
		acc := false
		for _, n := range operands {
			b, ok := n.Value().Bool()
			if !ok {
				return value.Value{}, xerrors.TypeError.New(n.Value().Kind(), value.KindBool)
			}
			acc = acc || b
		}
		return value.Bool(acc), nil
	default:
		return value.Value{}, xerrors.BuilderStateError.New("combine called with non-combining operator " + op.String())
	}
}

// compare implements binary comparisons and the flip rule (§4.2): a
// False result is stored under the dual operator so the Renderer reads
// a true statement off the operand order it was given, unchanged.
func compare(op tree.Operator, left, right *tree.Node) (*tree.Node, error) {
	var result bool
	var err error

	switch op {
	case tree.Eq:
		result = value.Eq(left.Value(), right.Value())
	case tree.Neq:
		result = value.Ne(left.Value(), right.Value())
	case tree.Gt:
		result, err = value.Gt(left.Value(), right.Value())
	case tree.Gte:
		result, err = value.Gte(left.Value(), right.Value())
	case tree.Lt:
		result, err = value.Lt(left.Value(), right.Value())
	case tree.Lte:
		result, err = value.Lte(left.Value(), right.Value())
	default:
		return nil, xerrors.BuilderStateError.New("compare called with non-comparison operator " + op.String())
	}
	if err != nil {
		return nil, err
	}

	finalOp := op
	if !result {
		finalOp = op.Dual()
	}
	return tree.New(finalOp, value.Bool(result), left, right), nil
}

func requireBool(n *tree.Node) error {
	if n.Value().Kind() != value.KindBool {
		return xerrors.TypeError.New(n.Value().Kind(), value.KindBool)
	}
	return nil
}

func requireNumeric(n *tree.Node) error {
	k := n.Value().Kind()
	if k != value.KindInt && k != value.KindFloat {
		return xerrors.TypeError.New(k, "numeric")
	}
	return nil
}
