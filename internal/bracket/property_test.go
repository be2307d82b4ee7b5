package bracket_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/diag"
	"cxxtargs/internal/lexer"
	"cxxtargs/internal/token"
)

// genTree draws trees whose leaves are valid tokens.
func genTree(depth int) *rapid.Generator[bracket.Node] {
	return rapid.Custom(func(t *rapid.T) bracket.Node {
		if depth == 0 || rapid.Bool().Draw(t, "leaf") {
			return bracket.Leaf(rapid.StringMatching(`[A-Za-z0-9_:*&]{1,8}`).Draw(t, "text"))
		}
		n := rapid.IntRange(0, 4).Draw(t, "len")
		children := make([]bracket.Node, n)
		for i := range children {
			children[i] = genTree(depth-1).Draw(t, fmt.Sprintf("child%d", i))
		}
		return bracket.List(children...)
	})
}

// genText draws arbitrary bracket-ish text, balanced or not.
var genText = rapid.StringMatching(`[ab :<>,]{0,16}`)

func TestPropertyCanonicalRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(4).Draw(t, "tree")
		got, err := bracket.Parse(tree.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tree.String(), err)
		}
		if !got.Equal(tree) {
			t.Fatalf("round trip changed tree: %s -> %s", tree, got)
		}
	})
}

func TestPropertyReparseIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		text := genText.Draw(t, "text")
		first, err := bracket.Parse(text)
		if err != nil {
			return
		}
		second, err := bracket.Parse(first.String())
		if err != nil {
			t.Fatalf("canonical text %q failed to parse: %v", first.String(), err)
		}
		if !second.Equal(first) {
			t.Fatalf("not idempotent: %q -> %s -> %s", text, first, second)
		}
	})
}

func TestPropertyLeafCountMatchesTokens(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		text := genText.Draw(t, "text")
		tree, err := bracket.Parse(text)
		if err != nil {
			return
		}
		want := 0
		for _, tok := range lexer.All(text, lexer.Options{}) {
			if tok.Kind == token.Text {
				want++
			}
		}
		if tree.Leaves() != want {
			t.Fatalf("%q: %d leaves, %d tokens", text, tree.Leaves(), want)
		}
	})
}

func TestPropertyLeafCountOfGeneratedTrees(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(4).Draw(t, "tree")
		text := tree.String()
		want := 0
		for _, tok := range lexer.All(text, lexer.Options{}) {
			if tok.Kind == token.Text {
				want++
			}
		}
		got, err := bracket.Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", text, err)
		}
		if got.Leaves() != want || tree.Leaves() != want {
			t.Fatalf("%q: parsed %d, generated %d, tokens %d", text, got.Leaves(), tree.Leaves(), want)
		}
	})
}

func TestPropertyFailuresAreBracketErrors(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		text := genText.Draw(t, "text")
		_, err := bracket.Parse(text)
		if err == nil {
			return
		}
		if diag.KindOf(err) != diag.MalformedBracketStructure {
			t.Fatalf("%q: unexpected error kind %v (%v)", text, diag.KindOf(err), err)
		}
		de, _ := diag.AsError(err)
		if int(de.Span.End) > len(text) {
			t.Fatalf("%q: span %s outside text", text, de.Span)
		}
	})
}
