package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch-or-commit>",
		Short: "Replace the working tree with a branch or commit",
		Long: "Replace the working tree with a branch or commit.\n\n" +
			"Every file outside the metadata directory is removed first; uncommitted\n" +
			"changes are lost. A commit digest detaches HEAD.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("checkout: %w: branch or commit", repo.ErrMissingArgument)
			}

			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}

			head, err := r.Checkout(args[0])
			if err != nil {
				return err
			}

			if head.Detached() {
				fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s\n", head.Commit.Short())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "switched to branch '%s'\n", head.Branch)
			}
			return nil
		},
	}
}
