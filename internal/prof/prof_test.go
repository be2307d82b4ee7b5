package prof

import (
	"testing"

	"github.com/spf13/afero"
)

func TestSessionWritesProfiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := Start(fs, Paths{CPU: "/p/cpu.out", Mem: "/p/mem.out", Trace: "/p/trace.out"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Active() {
		t.Fatalf("session should be active")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{"/p/cpu.out", "/p/mem.out", "/p/trace.out"} {
		info, err := fs.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestSessionEmpty(t *testing.T) {
	s, err := Start(afero.NewMemMapFs(), Paths{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Active() {
		t.Fatalf("empty session should not be active")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}

func TestStartFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if _, err := Start(fs, Paths{CPU: "/cpu.out"}); err == nil {
		t.Fatalf("expected error")
	}
}
