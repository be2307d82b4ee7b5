package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// messageSeeds are real diagnostics plus the malformed shapes the parser
// reports errors for.
var messageSeeds = []string{
	"void f(T) [with T = int]",
	"void f(T, U) [with T = std::map<int, char>; U = long]",
	"void cute::copy_unpack(const Copy_Atom<Args ...>&, const Tensor<TS, SLayout>&, Tensor<TD, DLayout>&) " +
		"[with TS = cute::ViewEngine<cute::gmem_ptr<int8_t *>>, " +
		"SLayout = cute::Layout<cute::tuple<cute::_16, cute::_1>, cute::tuple<int, cute::_0>>]",
	"f [with A=B=c]",
	"f [with A=x [with B=y]",
	"f [with T=int]   ",
	"f [with =int]",
	"f()",
	"f [with T=int",
	"f [with T]",
	"f [with ]",
	"f [with T=<int]",
	"f [with T=a, U=b>]",
	"",
}

// bracketSeeds are value texts on their own.
var bracketSeeds = []string{
	"int",
	"<a,b,<c,d>>",
	"<>",
	"<<>>",
	"a, b",
	"<a,,b>",
	"<a>b",
	"cute::ViewEngine<cute::gmem_ptr<int8_t *>>",
	"const\tint * ",
	"<",
	">",
	"<<a>",
	"\uFEFF<a>",
}

func addSeeds(f *testing.F, seeds []string) {
	for _, s := range seeds {
		f.Add(s)
	}
}

func clampInput(s string) string {
	if len(s) <= maxFuzzInput {
		return s
	}
	return s[:maxFuzzInput]
}
