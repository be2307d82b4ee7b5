package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cxxtargs/internal/source"
	"cxxtargs/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensPretty prints one token per line with its 1-based columns.
func FormatTokensPretty(w io.Writer, tokens []token.Token, set *source.InputSet) error {
	for i, tok := range tokens {
		start, end := set.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-8s", i+1, tok.Kind)
		if tok.Text != "" && tok.Kind == token.Text {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d-%d\n", start.Col, end.Col)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as an indented JSON array with byte offsets.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
