package message_test

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/message"
	"cxxtargs/internal/source"
	"cxxtargs/internal/testkit"
)

func genValue(depth int) *rapid.Generator[bracket.Node] {
	return rapid.Custom(func(t *rapid.T) bracket.Node {
		if depth == 0 || rapid.Bool().Draw(t, "leaf") {
			return bracket.Leaf(rapid.StringMatching(`[a-z0-9_:*]{1,6}`).Draw(t, "text"))
		}
		n := rapid.IntRange(0, 3).Draw(t, "len")
		children := make([]bracket.Node, n)
		for i := range children {
			children[i] = genValue(depth-1).Draw(t, fmt.Sprintf("child%d", i))
		}
		return bracket.List(children...)
	})
}

// Well-formed rendered messages parse back to their names and values.
func TestPropertyRenderedMessageRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		sig := rapid.StringMatching(`[a-z_]{1,8}\([a-z, ]{0,8}\)`).Draw(t, "sig")
		n := rapid.IntRange(1, 5).Draw(t, "args")
		names := make([]string, n)
		values := make([]bracket.Node, n)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			names[i] = rapid.StringMatching(`[A-Z][A-Za-z0-9_]{0,5}`).Draw(t, fmt.Sprintf("name%d", i))
			values[i] = genValue(3).Draw(t, fmt.Sprintf("value%d", i))
			parts[i] = names[i] + "=" + values[i].String()
		}
		text := sig + " [with " + strings.Join(parts, ", ") + "]"

		set := source.NewInputSet()
		id := set.AddVirtual("<prop>", text)
		m, err := message.ParseWith(text, message.Options{Input: id})
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", text, err)
		}
		if err := testkit.CheckMessageSpans(m, set.Get(id)); err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if m.Signature != sig {
			t.Fatalf("Signature = %q, want %q", m.Signature, sig)
		}
		if len(m.Args) != n {
			t.Fatalf("Parse(%q) gave %d args, want %d", text, len(m.Args), n)
		}
		for i, a := range m.Args {
			if a.Name != names[i] || !a.Value.Equal(values[i]) {
				t.Fatalf("arg %d = %s=%s, want %s=%s", i, a.Name, a.Value, names[i], values[i])
			}
		}
	})
}
