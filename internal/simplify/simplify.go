// Package simplify implements the causal Simplifier (§4.6): a pure,
// bottom-up rewrite of a Node tree that erases Not, replaces And/Or
// with their duals when the outcome inverts, and prunes a Conditional
// down to its taken branch and the conditions that justify it.
//
// Simplify never mutates its input; every rule reconstructs a new Node
// from already-simplified operands, so the root value and the
// identity path to the operands that caused it survive unchanged. The
// one exception is Not: it is replaced by its operand, so a tree rooted
// at Not simplifies to a tree carrying the operand's un-negated value.
package simplify

import (
	"xplain/internal/tree"
)

// Simplify rewrites n bottom-up per §4.6. It is idempotent:
// Simplify(Simplify(n)) produces a tree equivalent to Simplify(n).
func Simplify(n *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}
	switch n.Operator() {
	case tree.Leaf:
		return n
	case tree.Not:
		// The operator is erased: Not contributes no justification of
		// its own, so simplification hands back its operand's own
		// simplified form directly.
		return Simplify(n.Operands()[0])
	case tree.And:
		return simplifyAnd(n)
	case tree.Or:
		return simplifyOr(n)
	case tree.Conditional:
		return simplifyConditional(n)
	default:
		return rebuildOperandsOnly(n)
	}
}

// rebuildOperandsOnly handles Arithmetic/Comparison/Lookup/
// UncertainLookup: operands are simplified, the node is reconstructed
// around them with no pruning.
func rebuildOperandsOnly(n *tree.Node) *tree.Node {
	simplified := simplifyAll(n.Operands())
	name, named := n.Name()
	if named {
		return tree.NewNamed(n.Operator(), name, n.Value(), simplified...)
	}
	return tree.NewWithCase(n.Operator(), n.Value(), simplified, n.CaseLabels())
}

func simplifyAll(operands []*tree.Node) []*tree.Node {
	out := make([]*tree.Node, len(operands))
	for i, op := range operands {
		out[i] = Simplify(op)
	}
	return out
}

func simplifyAnd(n *tree.Node) *tree.Node {
	value, _ := n.Value().Bool()
	if value || isRewritten(n) {
		// All operands contributed to a True And, and a rewritten
		// (Or/False) And already holds only its causes: keep every one.
		return tree.NewWithCase(tree.And, n.Value(), simplifyAll(n.Operands()), n.CaseLabels())
	}

	// And/False rewrites to Or, keeping only the False causes.
	causes := filterByBool(n.Operands(), false)
	simplified := simplifyAll(causes)
	if len(simplified) == 1 {
		return simplified[0]
	}
	return tree.NewWithCase(tree.Or, n.Value(), simplified, &tree.CaseLabels{Reduced: true})
}

func simplifyOr(n *tree.Node) *tree.Node {
	value, _ := n.Value().Bool()
	if !value {
		if isRewritten(n) {
			// Already the And/False rewrite: its operands are the causes.
			return tree.NewWithCase(tree.Or, n.Value(), simplifyAll(n.Operands()), n.CaseLabels())
		}
		// Or/False rewrites to And: every operand had to be false.
		return tree.NewWithCase(tree.And, n.Value(), simplifyAll(n.Operands()), &tree.CaseLabels{Reduced: true})
	}

	causes := filterByBool(n.Operands(), true)
	simplified := simplifyAll(causes)
	if len(simplified) == 1 {
		return simplified[0]
	}
	return tree.New(tree.Or, n.Value(), simplified...)
}

func filterByBool(operands []*tree.Node, want bool) []*tree.Node {
	out := make([]*tree.Node, 0, len(operands))
	for _, op := range operands {
		if b, ok := op.Value().Bool(); ok && b == want {
			out = append(out, op)
		}
	}
	return out
}

// isRewritten reports whether n is an And/Or the Simplifier produced by
// the dual rewrite of a False connective.
func isRewritten(n *tree.Node) bool {
	labels := n.CaseLabels()
	return labels != nil && labels.Reduced
}

// simplifyConditional replaces a Conditional with a subtree holding
// only the taken branch and the conditions that justify it: every
// condition up to and including the one that fired (or every condition
// when the else branch fired), plus the selected expression.
func simplifyConditional(n *tree.Node) *tree.Node {
	labels := n.CaseLabels()
	operands := n.Operands()
	if labels.Reduced {
		// Already pruned: the operands are the retained conditions and
		// the selected branch.
		return tree.NewWithCase(tree.Conditional, n.Value(), simplifyAll(operands), labels)
	}
	branches := (len(operands) - 1) / 2

	var retained []*tree.Node
	var selected *tree.Node
	if labels.BranchIndex < branches {
		for i := 0; i <= labels.BranchIndex; i++ {
			retained = append(retained, operands[2*i])
		}
		selected = operands[2*labels.BranchIndex+1]
	} else {
		for i := 0; i < branches; i++ {
			retained = append(retained, operands[2*i])
		}
		selected = operands[len(operands)-1]
	}

	newOperands := make([]*tree.Node, 0, len(retained)+1)
	for _, c := range retained {
		newOperands = append(newOperands, Simplify(c))
	}
	newOperands = append(newOperands, Simplify(selected))

	newLabels := &tree.CaseLabels{
		BranchIndex:   labels.BranchIndex,
		Reduced:       true,
		RetainedConds: len(retained),
	}
	return tree.NewWithCase(tree.Conditional, n.Value(), newOperands, newLabels)
}
