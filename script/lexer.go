package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes xplainscript: bindings, literals, the comparison and
// boolean operators, and the if/then/elif/else keywords. Keywords are
// plain Ident tokens — participle matches a quoted literal in a grammar
// tag against any token whose text equals it, regardless of token type.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"String", `"(\\.|[^"])*"`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Int", `[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Operator", `(==|!=|>=|<=|[-+*/<>=()])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
