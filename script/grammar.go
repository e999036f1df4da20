package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is either a conditional or a plain script — the two forms
// §4.10's grammar allows at the top level.
type Program struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Conditional *Conditional `  @@`
	Expr        *Script      `| @@`
}

// Script is a flat left-to-right chain: binding (op binding)*.
type Script struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Operand `@@`
	Ops    []*OpTerm `{ @@ }`
}

type OpTerm struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator string   `@("+" | "-" | "*" | "/" | "==" | "!=" | ">=" | "<=" | ">" | "<" | "and" | "or")`
	Right    *Operand `@@`
}

// Operand is a name=literal binding or a parenthesized sub-script.
type Operand struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Binding *Binding `  @@`
	Sub     *Script  `| "(" @@ ")"`
}

type Binding struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    string   `@Ident "="`
	Literal *Literal `@@`
}

// Literal is the nullary terminal a Binding assigns: exactly one field
// is populated depending on which alternative matched.
type Literal struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Float  *float64 `  @Float`
	Int    *int64   `| @Int`
	Bool   *string  `| @("true" | "false")`
	Null   bool     `| @"null"`
	Str    *string  `| @String`
}

// Conditional is the if/then (elif/then)*/else chain of §4.10.
type Conditional struct {
	Pos    lexer.Position
	EndPos lexer.Position
	If     *Script       `"if" @@`
	Then   *Script       `"then" @@`
	Elifs  []*ElifClause `{ @@ }`
	Else   *Script       `"else" @@`
}

type ElifClause struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Script `"elif" @@`
	Then   *Script `"then" @@`
}
