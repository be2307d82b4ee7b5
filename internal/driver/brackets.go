package driver

import (
	"context"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/lexer"
	"cxxtargs/internal/source"
	"cxxtargs/internal/token"
	"cxxtargs/internal/trace"
)

// BracketsResult is the outcome of parsing bare bracket text.
type BracketsResult struct {
	Input  source.InputID
	Tokens []token.Token
	Node   bracket.Node
	Err    error
}

// ParseBrackets lexes and parses the input id as bracket text without a
// with-clause.
func ParseBrackets(ctx context.Context, set *source.InputSet, id source.InputID) BracketsResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "brackets", trace.ParentFrom(ctx))
	in := set.Get(id)
	if in == nil {
		span.End("unknown input")
		return BracketsResult{Input: id, Err: errUnknownInput(id)}
	}

	res := BracketsResult{
		Input:  id,
		Tokens: lexer.All(in.Text, lexer.Options{Input: id}),
	}
	res.Node, res.Err = bracket.ParseWith(in.Text, bracket.Options{Input: id})
	if res.Err != nil {
		span.End(res.Err.Error())
		return res
	}
	span.End(res.Node.Kind.String())
	return res
}
