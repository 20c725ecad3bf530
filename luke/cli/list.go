package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List commits, oldest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	list := s.commits.ListCommits()
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), list)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GENERATION\tDELETED\tSEGMENTS\tUSER DATA")
	for _, c := range list {
		fmt.Fprintf(w, "%d\t%v\t%d\t%v\n", c.Generation, c.IsDeleted, c.SegCount, c.UserDataString())
	}
	return w.Flush()
}
