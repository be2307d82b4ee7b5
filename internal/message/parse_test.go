package message_test

import (
	"errors"
	"testing"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/diag"
	"cxxtargs/internal/message"
	"cxxtargs/internal/source"
)

var (
	L = bracket.Leaf
	N = bracket.List
)

type wantArg struct {
	name  string
	value bracket.Node
}

func checkArgs(t *testing.T, m *message.Message, want []wantArg) {
	t.Helper()
	if len(m.Args) != len(want) {
		t.Fatalf("got %d args %v, want %d", len(m.Args), m.Names(), len(want))
	}
	for i, w := range want {
		a := m.Args[i]
		if a.Name != w.name {
			t.Fatalf("arg %d name = %q, want %q", i, a.Name, w.name)
		}
		if !a.Value.Equal(w.value) {
			t.Fatalf("arg %s = %s, want %s", a.Name, a.Value, w.value)
		}
	}
}

func TestParseSimple(t *testing.T) {
	m, err := message.Parse("f() [with A=int, B=<x,y>]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.Signature != "f()" {
		t.Fatalf("Signature = %q", m.Signature)
	}
	checkArgs(t, m, []wantArg{
		{"A", L("int")},
		{"B", N(L("x"), L("y"))},
	})
}

func TestParseCuteMessage(t *testing.T) {
	const msg = "void cute::copy_unpack(const cute::Copy_Traits<cute::SM80_CP_ASYNC_CACHEALWAYS_ZFILL<cutlass::uint128_t, cutlass::uint128_t>> &, const cute::Tensor<TS, SLayout> &, cute::Tensor<TD, DLayout> &) " +
		"[with TS=cute::ViewEngine<cute::gmem_ptr<int8_t *>>, " +
		"SLayout=cute::Layout<cute::tuple<cute::tuple<cute::_16, cute::_1>>, cute::tuple<cute::tuple<int, cute::_0>>>, " +
		"TD=cute::ViewEngine<cute::smem_ptr<int8_t *>>, " +
		"DLayout=cute::Layout<cute::tuple<cute::tuple<cute::_16, cute::_1>>, cute::tuple<cute::tuple<cute::C<64>, cute::_0>>>]"

	m, err := message.Parse(msg)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if want := "void cute::copy_unpack(const cute::Copy_Traits<cute::SM80_CP_ASYNC_CACHEALWAYS_ZFILL<cutlass::uint128_t, cutlass::uint128_t>> &, const cute::Tensor<TS, SLayout> &, cute::Tensor<TD, DLayout> &)"; m.Signature != want {
		t.Fatalf("Signature = %q", m.Signature)
	}
	checkArgs(t, m, []wantArg{
		{"TS", N(L("cute::ViewEngine"), N(L("cute::gmem_ptr"), N(L("int8_t*"))))},
		{"SLayout", N(L("cute::Layout"), N(
			L("cute::tuple"), N(L("cute::tuple"), N(L("cute::_16"), L("cute::_1"))),
			L("cute::tuple"), N(L("cute::tuple"), N(L("int"), L("cute::_0"))),
		))},
		{"TD", N(L("cute::ViewEngine"), N(L("cute::smem_ptr"), N(L("int8_t*"))))},
		{"DLayout", N(L("cute::Layout"), N(
			L("cute::tuple"), N(L("cute::tuple"), N(L("cute::_16"), L("cute::_1"))),
			L("cute::tuple"), N(L("cute::tuple"), N(L("cute::C"), N(L("64")), L("cute::_0"))),
		))},
	})
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		sig  string
		want []wantArg
	}{
		{"single argument", "g(T) [with T=double]", "g(T)", []wantArg{{"T", L("double")}}},
		{"spaces around equals", "h [with T = int, U = char]", "h", []wantArg{{"T", L("int")}, {"U", L("char")}}},
		{"empty value", "h [with T=]", "h", []wantArg{{"T", N()}}},
		{
			// an interior field without a comma gives an empty value
			"interior field without comma", "h [with A=B=c]", "h",
			[]wantArg{{"A", N()}, {"B", L("c")}},
		},
		{
			// unbracketed commas in a value move text to the next name
			"unbracketed comma attributed to next name", "h [with A=x, y, B=z]", "h",
			[]wantArg{{"A", N(L("x"), L("y"))}, {"B", L("z")}},
		},
		{
			"comma in nested value split at last comma", "h [with A=<p,q>, B=r]", "h",
			[]wantArg{{"A", N(L("p"), L("q"))}, {"B", L("r")}},
		},
		{
			"second marker belongs to the clause", "f [with A=x [with B=y]", "f",
			[]wantArg{{"A", N()}, {"x [with B", L("y")}},
		},
		{"empty signature", "[with T=int]", "", []wantArg{{"T", L("int")}}},
		{"duplicate names kept", "f [with T=a, T=b]", "f", []wantArg{{"T", L("a")}, {"T", L("b")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := message.Parse(tt.msg)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.msg, err)
			}
			if m.Signature != tt.sig {
				t.Fatalf("Signature = %q, want %q", m.Signature, tt.sig)
			}
			checkArgs(t, m, tt.want)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		sentinel error
		code     diag.Code
		start    uint32
		end      uint32
	}{
		{"no marker", "f()", diag.ErrMissingWithClause, diag.ClauseMissingWith, 0, 3},
		{"no closing bracket", "f [with T=int", diag.ErrMalformedClause, diag.ClauseMissingClose, 13, 13},
		{"closing bracket not last", "f [with T=int] x", diag.ErrMalformedClause, diag.ClauseMissingClose, 16, 16},
		{"trailing newline after bracket", "g(T) [with T=double]\n", diag.ErrMalformedClause, diag.ClauseMissingClose, 21, 21},
		{"trailing space after bracket", "f [with T=int] ", diag.ErrMalformedClause, diag.ClauseMissingClose, 15, 15},
		{"trailing tab after bracket", "f [with T=int]\t", diag.ErrMalformedClause, diag.ClauseMissingClose, 15, 15},
		{"no equals", "f [with T]", diag.ErrMalformedClause, diag.ClauseTooFewFields, 8, 9},
		{"empty clause", "f [with ]", diag.ErrMalformedClause, diag.ClauseTooFewFields, 8, 8},
		{"unclosed value", "f [with T=<int]", diag.ErrMalformedBracketStructure, diag.BracketUnclosedOpen, 10, 11},
		{"unmatched close in second value", "f [with T=a, U=b>]", diag.ErrMalformedBracketStructure, diag.BracketUnmatchedClose, 16, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := message.Parse(tt.msg)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got %+v", tt.msg, m)
			}
			if m != nil {
				t.Fatalf("partial result returned with error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error %v does not match %v", err, tt.sentinel)
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

func TestSplitSpans(t *testing.T) {
	const msg = "  f(x) [with  T = <a>,U=b ]"
	c, err := message.Split(msg, message.Options{Input: 3})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	slice := func(sp source.Span) string {
		if sp.Input != 3 {
			t.Fatalf("span %s lost its input id", sp)
		}
		return msg[sp.Start:sp.End]
	}
	if c.Signature != "f(x)" || slice(c.SignatureSpan) != "f(x)" {
		t.Fatalf("signature %q span %q", c.Signature, slice(c.SignatureSpan))
	}
	if len(c.Pairs) != 2 {
		t.Fatalf("pairs = %+v", c.Pairs)
	}
	for _, p := range c.Pairs {
		if slice(p.NameSpan) != p.Name || slice(p.ValueSpan) != p.Value {
			t.Fatalf("pair %+v spans do not cover its text", p)
		}
	}
	if c.Pairs[0].Value != "<a>" || c.Pairs[1].Name != "U" || c.Pairs[1].Value != "b" {
		t.Fatalf("pairs = %+v", c.Pairs)
	}
}

func TestMessageLookup(t *testing.T) {
	m, err := message.Parse("f [with A=1, B=<2>]")
	if err != nil {
		t.Fatal(err)
	}
	b, ok := m.Lookup("B")
	if !ok || !b.Value.Equal(N(L("2"))) || b.ValueText != "<2>" {
		t.Fatalf("Lookup(B) = %+v, %v", b, ok)
	}
	if _, ok := m.Lookup("C"); ok {
		t.Fatal("Lookup(C) must fail")
	}
}

func TestResolveWith(t *testing.T) {
	c, err := message.Split("f [with A=x, B=<y>, C=z]", message.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	m, err := c.ResolveWith(func(p message.Pair) (message.Arg, error) {
		seen = append(seen, p.Name)
		return p.Parse()
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Names(); len(got) != 3 || got[0] != "A" || got[2] != "C" {
		t.Fatalf("Names = %v", got)
	}
	if len(seen) != 3 || seen[1] != "B" {
		t.Fatalf("parser called for %v", seen)
	}

	stop := errors.New("stop")
	seen = nil
	m, err = c.ResolveWith(func(p message.Pair) (message.Arg, error) {
		seen = append(seen, p.Name)
		if p.Name == "B" {
			return message.Arg{}, stop
		}
		return p.Parse()
	})
	if !errors.Is(err, stop) || m != nil {
		t.Fatalf("ResolveWith = %+v, %v", m, err)
	}
	if len(seen) != 2 {
		t.Fatalf("parser must not run after a failure, saw %v", seen)
	}
}
