package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cxxtargs/internal/prof"
)

// profileSession is the profiler set of the running command.
var profileSession *prof.Session

func addProfileFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// setupProfiling starts the profilers named by the profiling flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	cpuProfile, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	s, err := prof.Start(appFs, prof.Paths{CPU: cpuProfile, Mem: memProfile, Trace: tracePath})
	if err != nil {
		return err
	}
	profileSession = s
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	if profileSession == nil {
		return
	}
	if err := profileSession.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	profileSession = nil
}
