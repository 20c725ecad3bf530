package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "segments <generation>",
		Short: "List the segments of a commit",
		Args:  cobra.ExactArgs(1),
		RunE:  runSegments,
	}
	RootCmd.AddCommand(cmd)
}

func runSegments(cmd *cobra.Command, args []string) error {
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

	segments, err := s.commits.GetSegmentsE(gen)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), segments)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "NAME\tMAXDOCS\tDELS\tDELGEN\tVERSION\tCODEC\tSIZE\t")
	for _, seg := range segments {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\t%v\t\n", seg.Name,
			humanize.Comma(int64(seg.MaxDoc)), humanize.Comma(int64(seg.DelCount)),
			seg.DelGen, seg.StorageVersion, seg.CodecName, seg.DisplaySize)
	}
	return w.Flush()
}
