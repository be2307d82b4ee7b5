package source

import (
	"testing"
)

func TestInputSet_AddAndGet(t *testing.T) {
	set := NewInputSet()
	a := set.AddVirtual("<arg 1>", "f() [with T=int]")
	b := set.Add("build.log", 42, "g() [with U=char]\r", 0)

	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
	if in := set.Get(a); in == nil || in.Name != "<arg 1>" || in.Flags&InputVirtual == 0 {
		t.Fatalf("unexpected input %+v", in)
	}
	in := set.Get(b)
	if in.Text != "g() [with U=char]" {
		t.Fatalf("trailing CR not stripped: %q", in.Text)
	}
	if in.Flags&InputTrimmedSpace == 0 {
		t.Fatalf("InputTrimmedSpace not set")
	}
	if set.Get(99) != nil {
		t.Fatalf("unknown id must return nil")
	}
}

func TestInputSet_BOMAndNFC(t *testing.T) {
	set := NewInputSet()
	// "e" followed by a combining acute accent.
	id := set.Add("build.log", 1, "\ufeffcafe\u0301", 0)
	in := set.Get(id)
	if in.Text != "caf\u00e9" {
		t.Fatalf("Text = %q", in.Text)
	}
	if in.Flags&InputHadBOM == 0 || in.Flags&InputNormalized == 0 {
		t.Fatalf("flags = %b", in.Flags)
	}
}

func TestInputSet_TrailingWhitespace(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"spaces", "f() [with T=int]   "},
		{"tab", "f() [with T=int]\t"},
		{"crlf remainder", "f() [with T=int] \r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewInputSet()
			in := set.Get(set.Add("build.log", 7, tt.text, 0))
			if in.Text != "f() [with T=int]" || in.Flags&InputTrimmedSpace == 0 {
				t.Fatalf("input = %+v", in)
			}
		})
	}
}

func TestInputSet_VirtualKeptVerbatim(t *testing.T) {
	set := NewInputSet()
	const text = "\ufeffcafe\u0301 [with T=int] \r"
	in := set.Get(set.AddVirtual("<arg 1>", text))
	if in.Text != text {
		t.Fatalf("Text = %q, want %q", in.Text, text)
	}
	if in.Flags != InputVirtual {
		t.Fatalf("flags = %b, want only InputVirtual", in.Flags)
	}
}

func TestInputSet_Resolve(t *testing.T) {
	set := NewInputSet()
	id := set.Add("log.txt", 3, "\u0436(x) [with T=<a>", 0)
	in := set.Get(id)
	// "ж" is two bytes but one column.
	start, end := set.Resolve(Span{Input: id, Start: 2, End: 3})
	if start.Line != 3 || start.Col != 2 || end.Col != 3 {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}
	if got := in.Slice(Span{Input: id, Start: 2, End: 5}); got != "(x)" {
		t.Fatalf("Slice = %q", got)
	}
	if got := set.Location(Span{Input: id, Start: 0, End: 1}); got != "log.txt:3:1" {
		t.Fatalf("Location = %q", got)
	}
}

func TestInputSet_VirtualLineDefaultsToOne(t *testing.T) {
	set := NewInputSet()
	id := set.AddVirtual("<arg 1>", "abc")
	start, _ := set.Resolve(Span{Input: id, Start: 1, End: 2})
	if start.Line != 1 || start.Col != 2 {
		t.Fatalf("Resolve = %+v", start)
	}
}
