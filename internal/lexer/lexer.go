package lexer

import (
	"strings"

	"cxxtargs/internal/source"
	"cxxtargs/internal/token"
)

// Lexer splits bracket text into Text and separator tokens.
type Lexer struct {
	cursor Cursor
	opts   Options
}

func New(text string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(text),
		opts:   opts,
	}
}

// Next returns the next token. Runs that contain only spaces produce no
// token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		ch := lx.cursor.Bump()
		if kind := token.KindOf(ch); kind != token.Text {
			return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: string(ch)}
		}
		lx.cursor.Reset(start)
		if tok, ok := lx.scanText(); ok {
			return tok
		}
	}

	return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.cursor.Mark())}
}

// scanText consumes a run of non-separator bytes. Only U+0020 is dropped
// from the token text, tabs and other whitespace are kept; the span runs from the first to the last kept byte.
func (lx *Lexer) scanText() (token.Token, bool) {
	var sb strings.Builder
	first, last := Mark(0), Mark(0)
	for !lx.cursor.EOF() && token.KindOf(lx.cursor.Peek()) == token.Text {
		at := lx.cursor.Mark()
		b := lx.cursor.Bump()
		if b == ' ' {
			continue
		}
		if sb.Len() == 0 {
			first = at
		}
		last = lx.cursor.Mark()
		sb.WriteByte(b)
	}
	if sb.Len() == 0 {
		return token.Token{}, false
	}
	return token.Token{
		Kind: token.Text,
		Span: source.Span{
			Input: lx.opts.Input,
			Start: uint32(first) + lx.opts.Offset,
			End:   uint32(last) + lx.opts.Offset,
		},
		Text: sb.String(),
	}, true
}

func (lx *Lexer) spanFrom(m Mark) source.Span {
	return source.Span{
		Input: lx.opts.Input,
		Start: uint32(m) + lx.opts.Offset,
		End:   lx.cursor.Off + lx.opts.Offset,
	}
}

// All lexes text to the end and returns every token including the final EOF.
func All(text string, opts Options) []token.Token {
	lx := New(text, opts)
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
