package tree

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// Operator tags a Node by the construction rule that produced it.
// Leaf carries no operator semantics of its own: it is a bound or
// literal operand.
type Operator int

const (
	Leaf Operator = iota

	// Arithmetic
	Plus
	Minus
	Times
	DividedBy

	// Comparison
	Eq
	Neq
	Gt
	Gte
	Lt
	Lte

	// Boolean
	And
	Or
	Not

	// Control
	Conditional
	Lookup
	UncertainLookup
)

var operatorNames = [...]string{
	"Leaf",
	"Plus", "Minus", "Times", "DividedBy",
	"Eq", "Neq", "Gt", "Gte", "Lt", "Lte",
	"And", "Or", "Not",
	"Conditional", "Lookup", "UncertainLookup",
}

func (o Operator) String() string {
	if int(o) < 0 || int(o) >= len(operatorNames) {
		return "Unknown"
	}
	return operatorNames[o]
}

var tagsToOperators = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for i := range operatorNames {
		m[Operator(i).Tag()] = Operator(i)
	}
	return m
}()

// OperatorFromTag reverses Tag, for the Reconstructor (§4.8).
func OperatorFromTag(tag string) (Operator, error) {
	op, ok := tagsToOperators[tag]
	if !ok {
		return Leaf, fmt.Errorf("tree: unknown operator tag %q", tag)
	}
	return op, nil
}

// Tag is the snake_case record tag of §6's operator tag vocabulary,
// e.g. DividedBy -> "divided_by", UncertainLookup -> "uncertain_lookup".
func (o Operator) Tag() string {
	return strcase.ToSnake(o.String())
}

func (o Operator) IsArithmetic() bool {
	switch o {
	case Plus, Minus, Times, DividedBy:
		return true
	default:
		return false
	}
}

func (o Operator) IsComparison() bool {
	switch o {
	case Eq, Neq, Gt, Gte, Lt, Lte:
		return true
	default:
		return false
	}
}

// IsFlattening reports whether same-operator flattening (§4.2/§4.3)
// applies to this operator: a new node of this kind absorbs a
// left-hand operand of the same kind's operands rather than nesting.
func (o Operator) IsFlattening() bool {
	switch o {
	case Plus, Times, And, Or:
		return true
	default:
		return false
	}
}

// Dual returns the flipped operator used when a comparison evaluates
// False (§4.2) or when simplification rewrites And<->Or (§4.6).
func (o Operator) Dual() Operator {
	switch o {
	case Gt:
		return Lte
	case Gte:
		return Lt
	case Lt:
		return Gte
	case Lte:
		return Gt
	case Eq:
		return Neq
	case Neq:
		return Eq
	case And:
		return Or
	case Or:
		return And
	default:
		return o
	}
}
