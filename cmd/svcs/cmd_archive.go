package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newArchiveCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "archive <commit> -o <file>",
		Short: "Write a commit's files as a zstd-compressed tar archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("archive: %w: commit", repo.ErrMissingArgument)
			}
			if output == "" {
				return fmt.Errorf("archive: %w: output file (-o)", repo.ErrMissingArgument)
			}

			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}

			if output == "-" {
				return r.Archive(cmd.OutOrStdout(), args[0])
			}

			if !filepath.IsAbs(output) {
				output = filepath.Join(a.dir, output)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			if err := r.Archive(f, args[0]); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `archive file ("-" for stdout)`)

	return cmd
}
