package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/balzaczyy/goluke/luke/models/commits"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "segment <generation> <name>",
		Short: "Show the diagnostics, attributes or codec of a segment",
		Args:  cobra.ExactArgs(2),
		RunE:  runSegment,
	}
	cmd.Flags().Bool("diagnostics", false, "Show the diagnostics (default)")
	cmd.Flags().Bool("attributes", false, "Show the attributes")
	cmd.Flags().Bool("codec", false, "Show the codec and its formats")
	RootCmd.AddCommand(cmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	showAttributes, _ := cmd.Flags().GetBool("attributes")
	showCodec, _ := cmd.Flags().GetBool("codec")
	showDiagnostics, _ := cmd.Flags().GetBool("diagnostics")
	selected := 0
	for _, b := range []bool{showAttributes, showCodec, showDiagnostics} {
		if b {
			selected++
		}
	}
	if selected > 1 {
		return errors.New("only one of --diagnostics, --attributes and --codec may be given")
	}

	gen, err := parseGeneration(args[0])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	if err = checkGeneration(s.commits, gen); err != nil {
		return err
	}
	name := args[1]
	if !hasSegment(s.commits, gen, name) {
		return fmt.Errorf("no segment %v in commit %v", name, gen)
	}

	out := cmd.OutOrStdout()
	switch {
	case showCodec:
		desc, ok := s.commits.GetSegmentCodec(gen, name)
		if !ok {
			return fmt.Errorf("codec of segment %v is unknown", name)
		}
		if isJSON() {
			return printJSON(out, desc.Rows())
		}
		for _, row := range desc.Rows() {
			fmt.Fprintf(out, "%v = %v\n", row.Label, row.Value)
		}
	case showAttributes:
		return printEntries(out, s.commits.GetSegmentAttributes(gen, name))
	default:
		diagnostics := s.commits.GetSegmentDiagnostics(gen, name)
		if err = printEntries(out, diagnostics); err != nil || isJSON() {
			return err
		}
		if when, ok := diagnosticsTime(diagnostics); ok {
			fmt.Fprintf(out, "(written %v)\n", humanize.Time(when))
		}
	}
	return nil
}

func hasSegment(m commits.Commits, gen int64, name string) bool {
	for _, seg := range m.GetSegments(gen) {
		if seg.Name == name {
			return true
		}
	}
	return false
}

func printEntries(w io.Writer, entries map[string]string) error {
	if isJSON() {
		return printJSON(w, entries)
	}
	for _, line := range commits.FormatEntries(entries) {
		fmt.Fprintln(w, line)
	}
	return nil
}

// Diagnostics record the flush or merge time in milliseconds since the epoch.
func diagnosticsTime(diagnostics map[string]string) (time.Time, bool) {
	millis, err := strconv.ParseInt(diagnostics["timestamp"], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}
