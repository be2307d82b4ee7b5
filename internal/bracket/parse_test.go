package bracket_test

import (
	"errors"
	"testing"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/diag"
)

var (
	L = bracket.Leaf
	N = bracket.List
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bracket.Node
	}{
		{"nested list", "<a,b,<c,d>>", N(L("a"), L("b"), N(L("c"), L("d")))},
		{"empty input", "", N()},
		{"blank input", "   ", N()},
		{"bare scalar", "int", L("int")},
		{"scalar with spaces", " const int * ", L("constint*")},
		{"single list", "<x, y>", N(L("x"), L("y"))},
		{"empty brackets", "<>", N()},
		{"nested empty", "<<>>", N(N())},
		{"top level siblings", "a, b", N(L("a"), L("b"))},
		{
			"template name before args",
			"cute::ViewEngine<cute::gmem_ptr<int8_t *>>",
			N(L("cute::ViewEngine"), N(L("cute::gmem_ptr"), N(L("int8_t*")))),
		},
		{
			"layout",
			"cute::Layout<cute::tuple<cute::_16, cute::_1>, cute::tuple<int, cute::_0>>",
			N(
				L("cute::Layout"),
				N(
					L("cute::tuple"), N(L("cute::_16"), L("cute::_1")),
					L("cute::tuple"), N(L("int"), L("cute::_0")),
				),
			),
		},
		{"doubled commas", "<a,,b>", N(L("a"), L("b"))},
		{"text after close", "<a>b", N(N(L("a")), L("b"))},
		{"equals is plain text", "<N=3>", N(L("N=3"))},
		{"tab kept in leaf", "<a,\tb>", N(L("a"), L("\tb"))},
		{"tab only leaf kept", "<\t>", N(L("\t"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bracket.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		start uint32
		end   uint32
	}{
		{"unmatched close", "a>", diag.BracketUnmatchedClose, 1, 2},
		{"unmatched close after list", "<a>>", diag.BracketUnmatchedClose, 3, 4},
		{"unclosed open", "<a", diag.BracketUnclosedOpen, 0, 1},
		{"innermost unclosed open", "<a,<b>,<c", diag.BracketUnclosedOpen, 7, 8},
		{"only open", "<", diag.BracketUnclosedOpen, 0, 1},
		{"only close", ">", diag.BracketUnmatchedClose, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bracket.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !errors.Is(err, diag.ErrMalformedBracketStructure) {
				t.Fatalf("Parse(%q) error %v is not MalformedBracketStructure", tt.input, err)
			}
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("expected *diag.Error, got %T", err)
			}
			if de.Code != tt.code || de.Span.Start != tt.start || de.Span.End != tt.end {
				t.Fatalf("got %s at %d-%d, want %s at %d-%d",
					de.Code.ID(), de.Span.Start, de.Span.End, tt.code.ID(), tt.start, tt.end)
			}
		})
	}
}

func TestParseWithOffset(t *testing.T) {
	_, err := bracket.ParseWith("<x", bracket.Options{Input: 5, Offset: 20})
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	if de.Span.Input != 5 || de.Span.Start != 20 || de.Span.End != 21 {
		t.Fatalf("span = %+v", de.Span)
	}
}

func TestParseIsStateless(t *testing.T) {
	if _, err := bracket.Parse("<a"); err == nil {
		t.Fatal("expected error")
	}
	got, err := bracket.Parse("b")
	if err != nil || !got.Equal(L("b")) {
		t.Fatalf("failed parse leaked state into the next call: %s, %v", got, err)
	}
}

func TestNodeHelpers(t *testing.T) {
	n := N(L("a"), L("b"), N(L("c"), N()))
	if n.Leaves() != 3 {
		t.Fatalf("Leaves = %d", n.Leaves())
	}
	if n.Depth() != 3 {
		t.Fatalf("Depth = %d", n.Depth())
	}
	if L("x").Depth() != 0 || N().Depth() != 1 {
		t.Fatal("unexpected base depths")
	}
	if n.String() != "<a,b,<c,<>>>" {
		t.Fatalf("String = %q", n.String())
	}
	if n.Equal(N(L("a"), L("b"), N(L("c")))) {
		t.Fatal("trees of different shape must not be equal")
	}
	if L("a").Equal(N(L("a"))) {
		t.Fatal("leaf and list must not be equal")
	}
	if !N().IsList() || !L("z").IsLeaf() || N().Children == nil {
		t.Fatal("constructor invariants broken")
	}
}

func TestWalkOrderAndPruning(t *testing.T) {
	n := N(L("a"), N(L("b"), L("c")), L("d"))
	var seen []string
	bracket.Walk(n, func(node bracket.Node, depth int) bool {
		if node.IsLeaf() {
			seen = append(seen, node.Text)
		}
		return depth == 0
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "d" {
		t.Fatalf("pre-order with pruning visited %v", seen)
	}
}
