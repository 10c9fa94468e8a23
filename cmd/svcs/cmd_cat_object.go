package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/object"
)

func newCatObjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat-object <digest>",
		Short: "Print the raw bytes of a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}
			h, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}
			data, err := r.Store.Get(h)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
