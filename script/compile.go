// Package script implements xplainscript (§4.10), a minimal text
// notation for the builder surface of internal/builder, parsed with
// github.com/alecthomas/participle/v2 and compiled 1:1 onto the same
// fluent calls a Go host would make. It has no bearing on Node/Value
// semantics — it is purely a human-typable driver for the CLI/REPL.
package script

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"

	"xplain/internal/builder"
	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// Parse parses src into a Program without compiling it.
func Parse(name, src string) (*Program, error) {
	parser, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("script: failed to build parser: %w", err)
	}
	return parser.ParseString(name, src)
}

// Compile parses and compiles src in one step, the form the CLI/REPL
// use for a single line or file.
func Compile(name, src string) (*tree.Node, error) {
	p, err := Parse(name, src)
	if err != nil {
		return nil, err
	}
	return CompileProgram(p)
}

func CompileProgram(p *Program) (*tree.Node, error) {
	switch {
	case p.Conditional != nil:
		return compileConditional(p.Conditional)
	case p.Expr != nil:
		return compileScript(p.Expr)
	default:
		return nil, xerrors.BuilderStateError.New("empty program")
	}
}

// compileScript walks a flat binding-(op binding)* chain, threading a
// dynamically-typed builder (NumericBuilder or BoolBuilder) through
// each operator term. A script with no operators is just its leading
// operand, whatever kind it resolves to — no builder chain needed.
func compileScript(s *Script) (*tree.Node, error) {
	leftNode, err := compileOperandNode(s.Left)
	if err != nil {
		return nil, err
	}
	if len(s.Ops) == 0 {
		return leftNode, nil
	}

	var current interface{}
	switch leftNode.Value().Kind() {
	case value.KindInt:
		current, err = builder.Int(builder.NodeRef(leftNode))
	case value.KindFloat:
		current, err = builder.Float(builder.NodeRef(leftNode))
	case value.KindBool:
		current, err = builder.Bool(builder.NodeRef(leftNode))
	default:
		return nil, xerrors.TypeError.New(leftNode.Value().Kind(), "numeric or bool")
	}
	if err != nil {
		return nil, err
	}

	for _, term := range s.Ops {
		rhsNode, err := compileOperandNode(term.Right)
		if err != nil {
			return nil, err
		}
		rhs := builder.NodeRef(rhsNode)

		switch b := current.(type) {
		case *builder.NumericBuilder:
			current, err = applyNumericOp(b, term.Operator, rhs)
		case *builder.BoolBuilder:
			current, err = applyBoolOp(b, term.Operator, rhs)
		default:
			return nil, xerrors.BuilderStateError.New("unreachable builder state")
		}
		if err != nil {
			return nil, err
		}
	}
	return nodeOf(current), nil
}

func applyNumericOp(b *builder.NumericBuilder, op string, rhs builder.Operand) (interface{}, error) {
	switch op {
	case "+":
		return b.Plus(rhs)
	case "-":
		return b.Minus(rhs)
	case "*":
		return b.Times(rhs)
	case "/":
		return b.DividedBy(rhs)
	case "==":
		return b.Eq(rhs)
	case "!=":
		return b.Neq(rhs)
	case ">":
		return b.Gt(rhs)
	case ">=":
		return b.Gte(rhs)
	case "<":
		return b.Lt(rhs)
	case "<=":
		return b.Lte(rhs)
	default:
		return nil, xerrors.TypeError.New(op, "a numeric operator")
	}
}

func applyBoolOp(b *builder.BoolBuilder, op string, rhs builder.Operand) (interface{}, error) {
	switch op {
	case "and":
		return b.And(rhs)
	case "or":
		return b.Or(rhs)
	case "==":
		return b.Eq(rhs)
	case "!=":
		return b.Neq(rhs)
	default:
		return nil, xerrors.TypeError.New(op, "a boolean operator")
	}
}

func nodeOf(b interface{}) *tree.Node {
	switch b := b.(type) {
	case *builder.NumericBuilder:
		return b.Node()
	case *builder.BoolBuilder:
		return b.Node()
	default:
		return nil
	}
}

// compileOperandNode resolves a Binding or a parenthesized sub-Script
// to its underlying Node, without going through a typed builder — the
// caller decides what chain (if any) to enter based on the resulting
// Node's value kind.
func compileOperandNode(o *Operand) (*tree.Node, error) {
	switch {
	case o.Binding != nil:
		v, err := literalValue(o.Binding.Literal)
		if err != nil {
			return nil, err
		}
		return tree.NewLeaf(o.Binding.Name, true, v), nil
	case o.Sub != nil:
		return compileScript(o.Sub)
	default:
		return nil, xerrors.BuilderStateError.New("empty operand")
	}
}

func literalValue(l *Literal) (value.Value, error) {
	switch {
	case l.Float != nil:
		return value.Float(*l.Float), nil
	case l.Int != nil:
		return value.Int(*l.Int), nil
	case l.Bool != nil:
		return value.Bool(*l.Bool == "true"), nil
	case l.Null:
		return value.Null(), nil
	case l.Str != nil:
		unquoted, err := strconv.Unquote(*l.Str)
		if err != nil {
			return value.Value{}, fmt.Errorf("script: malformed string literal %s: %w", *l.Str, err)
		}
		return value.Str(unquoted), nil
	default:
		return value.Value{}, xerrors.BuilderStateError.New("empty literal")
	}
}

func compileConditional(c *Conditional) (*tree.Node, error) {
	ifNode, err := compileScript(c.If)
	if err != nil {
		return nil, err
	}
	pending, err := builder.If(builder.NodeRef(ifNode))
	if err != nil {
		return nil, err
	}

	thenNode, err := compileScript(c.Then)
	if err != nil {
		return nil, err
	}
	partial, err := pending.Then(builder.NodeRef(thenNode))
	if err != nil {
		return nil, err
	}

	for _, elif := range c.Elifs {
		elifCondNode, err := compileScript(elif.Cond)
		if err != nil {
			return nil, err
		}
		nextPending, err := partial.Elif(builder.NodeRef(elifCondNode))
		if err != nil {
			return nil, err
		}
		elifThenNode, err := compileScript(elif.Then)
		if err != nil {
			return nil, err
		}
		partial, err = nextPending.Then(builder.NodeRef(elifThenNode))
		if err != nil {
			return nil, err
		}
	}

	elseNode, err := compileScript(c.Else)
	if err != nil {
		return nil, err
	}
	return partial.Else(builder.NodeRef(elseNode))
}
