package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cxxtargs/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			full, _ := cmd.Flags().GetBool("full")

			info := version.Current()
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				return renderVersionJSON(out, info)
			case "pretty":
				rs, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				color.NoColor = !rs.useColor(out)
				return renderVersionPretty(out, info, full)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("full", false, "also print the commit message")
	return cmd
}

func renderVersionPretty(out io.Writer, info version.Info, full bool) error {
	if _, err := fmt.Fprintln(out, info.String()); err != nil {
		return err
	}
	if full {
		_, err := fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.Message))
		return err
	}
	return nil
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
