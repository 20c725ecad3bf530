package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"
)

func init() {
	cmd := &cobra.Command{
		Use:   "files <generation>",
		Short: "List the files of a commit",
		Args:  cobra.ExactArgs(1),
		RunE:  runFiles,
	}
	cmd.Flags().Bool("hash", false, "Add an xxh3-128 fingerprint of each file")
	RootCmd.AddCommand(cmd)
}

type fileRow struct {
	FileName    string `json:"name"`
	Size        int64  `json:"size"`
	DisplaySize string `json:"display_size"`
	Hash        string `json:"hash,omitempty"`
}

func runFiles(cmd *cobra.Command, args []string) error {
	withHash, _ := cmd.Flags().GetBool("hash")
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

	files, err := s.commits.GetFilesE(gen)
	if err != nil {
		return err
	}
	rows := make([]*fileRow, len(files))
	for i, f := range files {
		rows[i] = &fileRow{FileName: f.FileName, Size: f.Size, DisplaySize: f.DisplaySize}
		if withHash {
			if rows[i].Hash, err = fingerprint(s.dir, f.FileName); err != nil {
				return err
			}
		}
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rows)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if withHash {
			fmt.Fprintf(w, "%v\t%v\t%v\n", r.FileName, r.DisplaySize, r.Hash)
		} else {
			fmt.Fprintf(w, "%v\t%v\n", r.FileName, r.DisplaySize)
		}
	}
	return w.Flush()
}

func fingerprint(dir store.Directory, name string) (string, error) {
	in, err := dir.OpenInput(name, store.IO_CONTEXT_READONCE)
	if err != nil {
		return "", err
	}
	defer in.Close()
	data := make([]byte, in.Length())
	if err = in.ReadBytes(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes()), nil
}
