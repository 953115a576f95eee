// Package parser splits calculator input lines into word tokens using
// a Participle v2 lexer. The tokenizer stays deliberately dumb: it
// recognizes number-shaped, name-shaped and operator-shaped words and
// strips comments, but which words actually parse as numbers is decided
// by the numeric kinds registered with the engine.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Line is the top-level grammar node: a flat sequence of words.
type Line struct {
	Words []*Word `parser:"@@*"`
}

// Word is a single token of any shape.
type Word struct {
	Text string `parser:"@(Number | Ident | Operator)"`
}

var calcLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Skip whitespace and # comments.
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Number-shaped words, with optional sign and exponent. Must come
	// before Operator so "-7" lexes as one token.
	{Name: "Number", Pattern: `[+-]?[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?|[+-]?\.[0-9]+([eE][+-]?[0-9]+)?`},

	// Operation and constant names. Underscores and hyphens allowed
	// mid-name (constants like "k_B" or "lambda_C").
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*\??`},

	// Symbolic operation aliases: + - * / ** ^ ^2 ...
	{Name: "Operator", Pattern: `[+\-*/^%!?<>=~]+[0-9]*`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(calcLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Tokenize splits one input line into word tokens, dropping comments.
func Tokenize(line string) ([]string, error) {
	parsed, err := lineParser.ParseString("", line)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(parsed.Words))
	for _, w := range parsed.Words {
		tokens = append(tokens, w.Text)
	}
	return tokens, nil
}
