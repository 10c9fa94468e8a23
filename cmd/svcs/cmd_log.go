package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history from HEAD back to the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}

			headHash, err := r.HeadCommit()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if headHash == "" {
				fmt.Fprintln(out, "no commits yet")
				return nil
			}

			entries, err := r.Log(headHash, limit)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				c := entry.Commit
				if oneline {
					fmt.Fprintf(out, "%s %s\n", entry.Hash.Short(), c.Message)
					continue
				}
				fmt.Fprintf(out, "commit %s\n", entry.Hash)
				fmt.Fprintf(out, "Author: %s\n", c.Author)
				fmt.Fprintf(out, "Date:   %s\n", c.Timestamp)
				fmt.Fprintln(out)
				fmt.Fprintf(out, "    %s\n", c.Message)
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "show each commit on a single line")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit the number of commits shown (0 = all)")

	return cmd
}
