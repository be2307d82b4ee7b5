// Package prof writes Go runtime profiles for a single CLI run.
package prof

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/afero"
)

// Paths selects the profiles to record. Empty paths are skipped.
type Paths struct {
	CPU   string
	Mem   string
	Trace string
}

// Session is a set of running profilers. Stop ends them all.
type Session struct {
	fs        afero.Fs
	memPath   string
	cpuFile   afero.File
	traceFile afero.File
	stopped   bool
}

// Start begins CPU profiling and runtime tracing as requested by p. The
// heap profile is written by Stop. On error nothing is left running.
func Start(fs afero.Fs, p Paths) (*Session, error) {
	s := &Session{fs: fs, memPath: p.Mem}
	if p.CPU != "" {
		f, err := fs.Create(p.CPU)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	if p.Trace != "" {
		f, err := fs.Create(p.Trace)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

// Active reports whether any profile is recorded.
func (s *Session) Active() bool {
	return s != nil && (s.cpuFile != nil || s.traceFile != nil || s.memPath != "")
}

// Stop ends the runtime trace and the CPU profile, then writes the heap
// profile. Later calls do nothing.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.traceFile != nil {
		trace.Stop()
		errs = append(errs, s.traceFile.Close())
		s.traceFile = nil
	}
	errs = append(errs, s.stopCPU())
	if s.memPath != "" {
		errs = append(errs, writeHeap(s.fs, s.memPath))
	}
	return errors.Join(errs...)
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeHeap(fs afero.Fs, path string) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return WriteHeap(f)
}

// WriteHeap writes a heap profile to w.
func WriteHeap(w io.Writer) error {
	if err := pprof.WriteHeapProfile(w); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
