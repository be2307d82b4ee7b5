package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/message"
	"cxxtargs/internal/source"
	"cxxtargs/internal/trace"
)

// Options control a batch run.
type Options struct {
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// SkipUnmarked skips inputs without a "[with" marker instead of
	// reporting MissingWithClause.
	SkipUnmarked bool
	// ReportSkipped adds an info diagnostic for every skipped input.
	ReportSkipped bool
	// MaxDiagnostics caps the batch bag; <= 0 means one per input.
	MaxDiagnostics int
	// Progress receives one event per finished input. May be nil.
	Progress ProgressSink
}

// Result is the outcome of one input. Message is nil when Err is set or
// the input was skipped.
type Result struct {
	Input   source.InputID
	Message *message.Message
	Err     error
	Skipped bool
}

func (r Result) status() Status {
	switch {
	case r.Skipped:
		return StatusSkipped
	case r.Err != nil:
		return StatusError
	default:
		return StatusDone
	}
}

// Batch holds results in input order plus every error as a diagnostic.
type Batch struct {
	Results []Result
	Bag     *diag.Bag
}

// Counts returns how many inputs parsed, failed and were skipped.
func (b *Batch) Counts() (parsed, failed, skipped int) {
	for _, r := range b.Results {
		switch r.status() {
		case StatusDone:
			parsed++
		case StatusError:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return parsed, failed, skipped
}

// ParseOne parses the input id of set. Every argument value gets its own
// trace span under the input span.
func ParseOne(ctx context.Context, set *source.InputSet, id source.InputID, opts Options) Result {
	in := set.Get(id)
	if in == nil {
		return Result{Input: id, Err: errUnknownInput(id)}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeInput, inputLabel(in), trace.ParentFrom(ctx))

	if opts.SkipUnmarked && !strings.Contains(in.Text, message.Marker) {
		span.End("skipped")
		return Result{Input: id, Skipped: true}
	}

	clause, err := message.Split(in.Text, message.Options{Input: id})
	if err != nil {
		span.End(err.Error())
		return Result{Input: id, Err: err}
	}

	msg, err := clause.ResolveWith(func(p message.Pair) (message.Arg, error) {
		argSpan := trace.Begin(tracer, trace.ScopeArg, "arg:"+p.Name, span.ID())
		arg, err := p.Parse()
		if err != nil {
			argSpan.End(err.Error())
			return arg, err
		}
		argSpan.WithExtra("leaves", strconv.Itoa(arg.Value.Leaves())).
			WithExtra("depth", strconv.Itoa(arg.Value.Depth())).
			End("")
		return arg, nil
	})
	if err != nil {
		span.End("failed")
		return Result{Input: id, Err: err}
	}

	span.WithExtra("args", strconv.Itoa(len(msg.Args))).
		WithExtra("names", strings.Join(msg.Names(), ",")).
		End("")
	return Result{Input: id, Message: msg}
}

func errUnknownInput(id source.InputID) error {
	return fmt.Errorf("unknown input %d", id)
}

func inputLabel(in *source.Input) string {
	if in.Line > 0 {
		return fmt.Sprintf("input:%s:%d", in.Name, in.Line)
	}
	return "input:" + in.Name
}

// ParseBatch parses every id independently and in parallel. A failing
// input never stops its siblings; the returned error is only set when ctx
// is cancelled.
func ParseBatch(ctx context.Context, set *source.InputSet, ids []source.InputID, opts Options) (*Batch, error) {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = max(len(ids), 1)
	}
	batch := &Batch{
		Results: make([]Result, len(ids)),
		Bag:     diag.NewBag(maxDiag),
	}
	if len(ids) == 0 {
		return batch, nil
	}

	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "parse", trace.ParentFrom(ctx))
	ctx = trace.WithParent(ctx, pass)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			// each goroutine owns index i
			res := ParseOne(gctx, set, id, opts)
			batch.Results[i] = res
			if opts.Progress != nil {
				opts.Progress.OnEvent(Event{Input: id, Status: res.status(), Elapsed: time.Since(started)})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		pass.End("cancelled")
		return batch, err
	}

	reporter := diag.BagReporter{Bag: batch.Bag}
	for _, r := range batch.Results {
		switch {
		case r.Err != nil:
			diag.ReportErr(reporter, r.Err, source.Span{Input: r.Input})
		case r.Skipped && opts.ReportSkipped:
			diag.ReportInfo(reporter, diag.InputSkippedLine, source.Span{Input: r.Input},
				"line has no "+message.Marker+" clause; skipped").Emit()
		}
	}

	parsed, failed, skipped := batch.Counts()
	pass.WithExtra("failed", strconv.Itoa(failed)).
		WithExtra("skipped", strconv.Itoa(skipped)).
		End(fmt.Sprintf("%d parsed", parsed))
	return batch, nil
}
