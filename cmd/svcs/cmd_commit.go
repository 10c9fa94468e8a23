package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newCommitCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit -m <message>",
		Short: "Snapshot the working tree onto the current branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("message") {
				return fmt.Errorf("commit: %w: message (-m)", repo.ErrMissingArgument)
			}
			// Unquoted words after -m belong to the message.
			msg := strings.Join(append([]string{message}, args...), " ")

			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}

			h, err := r.Commit(msg)
			if err != nil {
				return err
			}

			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, h.Short(), msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")

	return cmd
}
