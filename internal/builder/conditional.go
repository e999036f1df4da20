package builder

import (
	"xplain/internal/tree"
	"xplain/internal/xerrors"
)

// The conditional grammar is a chain of distinct Go types, one per
// grammar state, so an invalid transition (calling Else before a
// matching Then, or finalizing with no branches) is a compile error
// rather than a runtime BuilderStateError:
//
//	If(cond) -> *IncompleteConditional -Then(expr)-> *PartialConditional
//	*PartialConditional -Elif(cond)-> *IncompleteConditional
//	*PartialConditional -Else(expr)-> *tree.Node

// IncompleteConditional holds a pending condition awaiting its Then branch.
type IncompleteConditional struct {
	conds       []*tree.Node
	thens       []*tree.Node
	pendingCond *tree.Node
}

// PartialConditional holds one or more complete (cond, then) pairs,
// awaiting either another Elif or the closing Else.
type PartialConditional struct {
	conds []*tree.Node
	thens []*tree.Node
}

// If opens a (possibly multi-branch) conditional.
func If(cond Operand) (*IncompleteConditional, error) {
	condNode, err := cond.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(condNode); err != nil {
		return nil, err
	}
	return &IncompleteConditional{pendingCond: condNode}, nil
}

func (ic *IncompleteConditional) Then(expr Operand) (*PartialConditional, error) {
	thenNode, err := expr.resolve()
	if err != nil {
		return nil, err
	}
	conds := append(append([]*tree.Node{}, ic.conds...), ic.pendingCond)
	thens := append(append([]*tree.Node{}, ic.thens...), thenNode)
	return &PartialConditional{conds: conds, thens: thens}, nil
}

func (pc *PartialConditional) Elif(cond Operand) (*IncompleteConditional, error) {
	condNode, err := cond.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(condNode); err != nil {
		return nil, err
	}
	return &IncompleteConditional{conds: pc.conds, thens: pc.thens, pendingCond: condNode}, nil
}

func (pc *PartialConditional) Else(expr Operand) (*tree.Node, error) {
	elseNode, err := expr.resolve()
	if err != nil {
		return nil, err
	}
	operands := make([]*tree.Node, 0, len(pc.conds)*2+1)
	for i := range pc.conds {
		operands = append(operands, pc.conds[i], pc.thens[i])
	}
	operands = append(operands, elseNode)
	return finalizeConditional(operands)
}

// Ternary is the two-branch specialization expr.If(cond).Else(other).
type Ternary struct {
	thenNode *tree.Node
	condNode *tree.Node
}

func newTernary(thenNode *tree.Node, cond Operand) (*Ternary, error) {
	condNode, err := cond.resolve()
	if err != nil {
		return nil, err
	}
	if err := requireBool(condNode); err != nil {
		return nil, err
	}
	return &Ternary{thenNode: thenNode, condNode: condNode}, nil
}

func (t *Ternary) Else(other Operand) (*tree.Node, error) {
	elseNode, err := other.resolve()
	if err != nil {
		return nil, err
	}
	return finalizeConditional([]*tree.Node{t.condNode, t.thenNode, elseNode})
}

// finalizeConditional picks the first true (cond, then) pair, falling
// back to the trailing else branch, and records which branch fired in
// CaseLabels so the Simplifier can prune to it without re-evaluating
// anything (§4.6).
func finalizeConditional(operands []*tree.Node) (*tree.Node, error) {
	n := len(operands)
	if n < 3 || n%2 == 0 {
		return nil, xerrors.BuilderStateError.New("conditional requires an odd operand count of at least 3: (cond, then)+, else")
	}
	branches := (n - 1) / 2
	for i := 0; i < branches; i++ {
		cond := operands[2*i]
		taken, _ := cond.Value().Bool()
		if taken {
			thenNode := operands[2*i+1]
			labels := &tree.CaseLabels{BranchIndex: i}
			return tree.NewWithCase(tree.Conditional, thenNode.Value(), operands, labels), nil
		}
	}
	elseNode := operands[n-1]
	labels := &tree.CaseLabels{BranchIndex: branches}
	return tree.NewWithCase(tree.Conditional, elseNode.Value(), operands, labels), nil
}
