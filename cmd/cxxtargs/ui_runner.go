package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cxxtargs/internal/driver"
	"cxxtargs/internal/source"
	"cxxtargs/internal/ui"
)

type batchOutcome struct {
	batch *driver.Batch
	err   error
}

// runBatchWithUI runs driver.ParseBatch while a progress view follows it
// on out.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, set *source.InputSet, ids []source.InputID, opts driver.Options) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		batch, err := driver.ParseBatch(ctx, set, ids, o)
		outcomeCh <- batchOutcome{batch: batch, err: err}
		close(events)
	}()

	label := func(id source.InputID) string {
		in := set.Get(id)
		if in == nil {
			return fmt.Sprintf("input %d", id)
		}
		return inputHeader(in)
	}
	model := ui.NewProgressModel(title, len(ids), events, label)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the producer from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
