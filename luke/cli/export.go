package cli

import (
	"fmt"

	"github.com/balzaczyy/goluke/luke/export"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export every commit to a SQLite database",
		Long: "Appends a snapshot of every commit, with its files, segments and segment metadata, " +
			"to a SQLite database. With --json a zstd-compressed JSON document is written instead.",
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().Bool("json", false, "Write zstd-compressed JSON instead of SQLite")
	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var runID string
	if asJSON {
		runID, err = export.WriteJSONFile(args[0], s.commits, conf.Export.CompressLevel)
	} else {
		runID, err = export.WriteSQLite(cmd.Context(), s.commits, args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), runID)
	return nil
}
