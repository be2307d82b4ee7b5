package driver

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/diag"
	"cxxtargs/internal/source"
	"cxxtargs/internal/trace"
)

const buildLog = "g++ -c main.cpp\n" +
	"\n" +
	"main.cpp:3: error: in f() [with A=int, B=<x,y>]\n" +
	"note: candidate h() [with T=<int]\r\n" +
	"k() [with U=<a,<b>>]"

func TestLoadReader(t *testing.T) {
	set := source.NewInputSet()
	ids, err := LoadReader(set, "build.log", strings.NewReader(buildLog))
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 4 {
		t.Fatalf("got %d inputs, blank lines must be dropped", len(ids))
	}
	wantLines := []uint32{1, 3, 4, 5}
	for i, id := range ids {
		if in := set.Get(id); in.Line != wantLines[i] || in.Name != "build.log" {
			t.Fatalf("input %d = %+v", i, in)
		}
	}
	if in := set.Get(ids[2]); strings.HasSuffix(in.Text, "\r") || in.Flags&source.InputTrimmedSpace == 0 {
		t.Fatalf("CR not trimmed: %+v", in)
	}
}

func TestTrailingWhitespaceFileVersusArg(t *testing.T) {
	const line = "f() [with T=<int>] \t"
	set := source.NewInputSet()
	fromFile, err := LoadReader(set, "build.log", strings.NewReader(line+"\n"))
	if err != nil || len(fromFile) != 1 {
		t.Fatalf("LoadReader = %v, %v", fromFile, err)
	}
	fromArg := LoadArgs(set, []string{line})

	if r := ParseOne(context.Background(), set, fromFile[0], Options{}); r.Err != nil {
		t.Fatalf("log line with trailing blanks: %v", r.Err)
	}
	r := ParseOne(context.Background(), set, fromArg[0], Options{})
	if !errors.Is(r.Err, diag.ErrMalformedClause) {
		t.Fatalf("argument with trailing blanks: err = %v, want MalformedClause", r.Err)
	}
}

func TestLoadFileAndStdin(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/logs/a.log", []byte("x [with T=y]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	set := source.NewInputSet()
	ids, err := LoadFile(set, fs, "/logs/a.log", nil)
	if err != nil || len(ids) != 1 {
		t.Fatalf("LoadFile = %v, %v", ids, err)
	}
	ids, err = LoadFile(set, fs, "-", strings.NewReader("one\ntwo\n"))
	if err != nil || len(ids) != 2 || set.Get(ids[1]).Name != StdinName {
		t.Fatalf("stdin = %v, %v", ids, err)
	}
	if _, err := LoadFile(set, fs, "/logs/missing.log", nil); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestLoadArgs(t *testing.T) {
	set := source.NewInputSet()
	ids := LoadArgs(set, []string{"a", "b"})
	if in := set.Get(ids[1]); in.Name != "<arg 2>" || in.Flags&source.InputVirtual == 0 {
		t.Fatalf("arg input = %+v", in)
	}
}

func TestParseBatchSkipsUnmarked(t *testing.T) {
	set := source.NewInputSet()
	ids, err := LoadReader(set, "build.log", strings.NewReader(buildLog))
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var events []Event
	sink := sinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	batch, err := ParseBatch(context.Background(), set, ids, Options{Jobs: 2, SkipUnmarked: true, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	parsed, failed, skipped := batch.Counts()
	if parsed != 2 || failed != 1 || skipped != 1 {
		t.Fatalf("counts = %d/%d/%d", parsed, failed, skipped)
	}
	if len(events) != 4 {
		t.Fatalf("got %d progress events", len(events))
	}

	r := batch.Results[1]
	if r.Message == nil || r.Message.Signature != "main.cpp:3: error: in f()" {
		t.Fatalf("result 1 = %+v", r)
	}
	if !r.Message.Args[1].Value.Equal(bracket.List(bracket.Leaf("x"), bracket.Leaf("y"))) {
		t.Fatalf("B = %s", r.Message.Args[1].Value)
	}

	if !errors.Is(batch.Results[2].Err, diag.ErrMalformedBracketStructure) {
		t.Fatalf("result 2 error = %v", batch.Results[2].Err)
	}
	items := batch.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.BracketUnclosedOpen || items[0].Primary.Input != ids[2] {
		t.Fatalf("bag = %+v", items)
	}
}

func TestParseBatchStrictReportsMissingWith(t *testing.T) {
	set := source.NewInputSet()
	ids := LoadArgs(set, []string{"plain text", "f [with T=int]"})
	batch, err := ParseBatch(context.Background(), set, ids, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(batch.Results[0].Err, diag.ErrMissingWithClause) || batch.Results[1].Message == nil {
		t.Fatalf("results = %+v", batch.Results)
	}
}

func TestParseBatchReportsSkipped(t *testing.T) {
	set := source.NewInputSet()
	ids, err := LoadReader(set, "build.log", strings.NewReader(buildLog))
	if err != nil {
		t.Fatal(err)
	}
	batch, err := ParseBatch(context.Background(), set, ids, Options{SkipUnmarked: true, ReportSkipped: true})
	if err != nil {
		t.Fatal(err)
	}
	batch.Bag.Sort()
	items := batch.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("bag = %+v", items)
	}
	if items[0].Severity != diag.SevInfo || items[0].Code != diag.InputSkippedLine || items[0].Primary.Input != ids[0] {
		t.Fatalf("skip diagnostic = %+v", items[0])
	}
	if items[1].Severity != diag.SevError || items[1].Primary.Input != ids[2] {
		t.Fatalf("error diagnostic = %+v", items[1])
	}
}

func TestParseBatchKeepsOrder(t *testing.T) {
	set := source.NewInputSet()
	var args []string
	for i := 0; i < 200; i++ {
		args = append(args, "f [with T="+strings.Repeat("<", i%5)+"x"+strings.Repeat(">", i%5)+"]")
	}
	ids := LoadArgs(set, args)
	batch, err := ParseBatch(context.Background(), set, ids, Options{Jobs: 8})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range batch.Results {
		if r.Input != ids[i] || r.Message == nil || r.Message.Args[0].Value.Depth() != i%5 {
			t.Fatalf("result %d out of order or wrong: %+v", i, r)
		}
	}
}

func TestParseBatchCancelled(t *testing.T) {
	set := source.NewInputSet()
	ids := LoadArgs(set, []string{"f [with T=int]", "g [with U=char]"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseBatch(ctx, set, ids, Options{Jobs: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestParseBatchEmpty(t *testing.T) {
	batch, err := ParseBatch(context.Background(), source.NewInputSet(), nil, Options{})
	if err != nil || len(batch.Results) != 0 || batch.Bag.Len() != 0 {
		t.Fatalf("empty batch = %+v, %v", batch, err)
	}
}

func TestParseOneTraces(t *testing.T) {
	var buf bytes.Buffer
	tracer := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tracer)

	set := source.NewInputSet()
	id := set.Add("build.log", 9, "f [with A=int, B=<x>]", 0)
	if r := ParseOne(ctx, set, id, Options{}); r.Err != nil {
		t.Fatal(r.Err)
	}
	out := buf.String()
	for _, want := range []string{
		"→ input:build.log:9",
		"← arg:A {depth=0, leaves=1}",
		"← arg:B {depth=1, leaves=1}",
		"← input:build.log:9 {args=2, names=A,B}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestParseBrackets(t *testing.T) {
	set := source.NewInputSet()
	ids := LoadArgs(set, []string{"a<b,c>", "a<b"})

	ok := ParseBrackets(context.Background(), set, ids[0])
	if ok.Err != nil || ok.Node.String() != "<a,<b,c>>" || len(ok.Tokens) != 7 {
		t.Fatalf("ParseBrackets = %+v", ok)
	}
	bad := ParseBrackets(context.Background(), set, ids[1])
	if !errors.Is(bad.Err, diag.ErrMalformedBracketStructure) {
		t.Fatalf("err = %v", bad.Err)
	}
}

type sinkFunc func(Event)

func (f sinkFunc) OnEvent(ev Event) { f(ev) }
