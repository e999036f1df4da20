// Package render implements the Renderer (§4.7): a pure function
// turning a Node tree, raw or already simplified, into the canonical
// "<value> because <expression>" string.
package render

import (
	"strings"

	"xplain/internal/tree"
)

// Render produces the canonical string form of n.
func Render(n *tree.Node) string {
	return n.Value().String() + " because " + expr(n, false)
}

var symbols = map[tree.Operator]string{
	tree.Plus:      "+",
	tree.Minus:     "-",
	tree.Times:     "×",
	tree.DividedBy: "/",
	tree.Eq:        "=",
	tree.Neq:       "≠",
	tree.Gt:        ">",
	tree.Gte:       "≥",
	tree.Lt:        "<",
	tree.Lte:       "≤",
	tree.And:       "and",
	tree.Or:        "or",
}

// expr renders n's justification clause. nested reports whether n is
// being rendered as an operand of a surrounding expression rather than
// as the top-level clause; a nested compound (non-leaf) node is
// parenthesized so the infix text stays unambiguous, matching the
// shape of the worked examples (§8).
func expr(n *tree.Node, nested bool) string {
	switch n.Operator() {
	case tree.Leaf:
		if name, named := n.Name(); named {
			return "(" + name + " := " + n.Value().String() + ")"
		}
		return n.Value().String()

	case tree.Not:
		// Not is erased at the rendering layer too: it contributes no
		// text of its own, only its operand's.
		return expr(n.Operands()[0], nested)

	case tree.Lookup, tree.UncertainLookup:
		// The found value is carried on a leaf named after the key
		// (§4.5); Lookup contributes no syntax beyond that leaf's own.
		return expr(n.Operands()[1], nested)

	case tree.Conditional:
		return wrapIfNested(conditionalExpr(n), nested)

	case tree.Plus, tree.Times, tree.And, tree.Or:
		parts := make([]string, len(n.Operands()))
		for i, op := range n.Operands() {
			parts[i] = expr(op, true)
		}
		return wrapIfNested(strings.Join(parts, " "+symbols[n.Operator()]+" "), nested)

	case tree.Minus, tree.DividedBy, tree.Eq, tree.Neq, tree.Gt, tree.Gte, tree.Lt, tree.Lte:
		left := expr(n.Operands()[0], true)
		right := expr(n.Operands()[1], true)
		return wrapIfNested(left+" "+symbols[n.Operator()]+" "+right, nested)

	default:
		return n.Value().String()
	}
}

func wrapIfNested(s string, nested bool) string {
	if nested {
		return "(" + s + ")"
	}
	return s
}

// conditionalExpr renders the post-simplification conditional form
// described in §4.7, computing the same (retained conditions, selected
// branch) view whether n has already been through the Simplifier or is
// still the raw alternating (cond, then, ...) tree.
func conditionalExpr(n *tree.Node) string {
	conds, selected, isElse := conditionalView(n)

	parts := make([]string, len(conds))
	for i, c := range conds {
		text := expr(c, true)
		if isElse {
			text = "not " + text
		}
		parts[i] = text
	}

	return expr(selected, true) + " when " + strings.Join(parts, " and ")
}

func conditionalView(n *tree.Node) (conds []*tree.Node, selected *tree.Node, isElse bool) {
	labels := n.CaseLabels()
	operands := n.Operands()

	if labels.Reduced {
		conds = operands[:labels.RetainedConds]
		selected = operands[len(operands)-1]
		return conds, selected, !lastCondFired(conds)
	}

	branches := (len(operands) - 1) / 2
	if labels.BranchIndex < branches {
		for i := 0; i <= labels.BranchIndex; i++ {
			conds = append(conds, operands[2*i])
		}
		return conds, operands[2*labels.BranchIndex+1], false
	}
	for i := 0; i < branches; i++ {
		conds = append(conds, operands[2*i])
	}
	return conds, operands[len(operands)-1], true
}

// lastCondFired reports whether the last retained condition is the one
// that fired (true branch) as opposed to every retained condition
// being false (the else branch) — needed because a Reduced node no
// longer carries the branch count directly, only RetainedConds.
func lastCondFired(conds []*tree.Node) bool {
	if len(conds) == 0 {
		return false
	}
	b, ok := conds[len(conds)-1].Value().Bool()
	return ok && b
}
