package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cxxtargs/internal/config"
)

// appFs is the filesystem for config and input files. Tests swap it.
var appFs afero.Fs = afero.NewOsFs()

// runSettings are the effective options of one command: built-in defaults,
// overridden by the config file, overridden by flags the user set.
type runSettings struct {
	config.Settings
	configPath string
	quiet      bool
}

func loadSettings(cmd *cobra.Command) (runSettings, error) {
	root := cmd.Root().PersistentFlags()
	explicit, err := root.GetString("config")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	s, path, err := config.Resolve(appFs, explicit, ".", config.UserDirs())
	if err != nil {
		return runSettings{}, err
	}
	rs := runSettings{Settings: s, configPath: path}

	if root.Changed("color") {
		rs.Output.Color, _ = root.GetString("color")
	}
	if root.Changed("max-diagnostics") {
		rs.Output.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if root.Changed("timings") {
		rs.Output.Timings, _ = root.GetBool("timings")
	}
	rs.quiet, _ = root.GetBool("quiet")

	local := cmd.Flags()
	if f := local.Lookup("format"); f != nil && f.Changed {
		rs.Output.Format = strings.ToLower(f.Value.String())
	}
	if local.Changed("indent") {
		rs.Output.Indent, _ = local.GetInt("indent")
	}
	if local.Changed("jobs") {
		rs.Parse.Jobs, _ = local.GetInt("jobs")
	}
	if local.Changed("strict") {
		rs.Parse.Strict, _ = local.GetBool("strict")
	}

	rs.Output.Color = strings.ToLower(rs.Output.Color)
	if err := validateFlags(rs); err != nil {
		return runSettings{}, err
	}
	return rs, nil
}

// validateFlags checks values that bypass config validation because they
// came from flags. The format set depends on the command and is checked
// there.
func validateFlags(rs runSettings) error {
	switch rs.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", rs.Output.Color)
	}
	if rs.Output.Indent < 1 || rs.Output.Indent > 16 {
		return fmt.Errorf("invalid --indent %d (expected 1..16)", rs.Output.Indent)
	}
	if rs.Parse.Jobs < 0 {
		return fmt.Errorf("invalid --jobs %d", rs.Parse.Jobs)
	}
	return nil
}

// useColor resolves the color setting for the writer w.
func (rs runSettings) useColor(w io.Writer) bool {
	switch rs.Output.Color {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(w)
}
