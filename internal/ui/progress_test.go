package ui

import (
	"strings"
	"testing"

	"cxxtargs/internal/driver"
	"cxxtargs/internal/source"
)

func TestProgressModelCounts(t *testing.T) {
	label := func(id source.InputID) string { return "build.log:" + string(rune('0'+id)) }
	m := NewProgressModel("parsing", 8, nil, label).(*progressModel)

	statuses := []driver.Status{
		driver.StatusDone, driver.StatusError, driver.StatusSkipped,
		driver.StatusError, driver.StatusError, driver.StatusError,
		driver.StatusError, driver.StatusError,
	}
	for i, st := range statuses {
		m.Update(eventMsg(driver.Event{Input: source.InputID(i), Status: st}))
	}
	if m.parsed != 1 || m.failed != 6 || m.skipped != 1 {
		t.Fatalf("counts = %d/%d/%d", m.parsed, m.failed, m.skipped)
	}
	if len(m.failures) != recentFailures || m.failures[0] != "build.log:3" {
		t.Fatalf("failures = %v", m.failures)
	}

	view := m.View()
	for _, want := range []string{"parsing (8/8)", "1 parsed", "6 failed", "1 skipped", "build.log:7"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must finish the model")
	}
	if !strings.Contains(m.View(), "done: parsing") {
		t.Fatalf("final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
