package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key [value]]",
		Short: "Get or set repository settings",
		Long: "Get or set repository settings in .svcs/config.toml.\n\n" +
			"  svcs config                list all settings\n" +
			"  svcs config <key>          print one setting\n" +
			"  svcs config <key> <value>  change a setting\n\n" +
			"core.digest is fixed when the repository is created.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch len(args) {
			case 0:
				for _, key := range repo.ConfigKeys {
					v, err := r.ConfigValue(key)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s = %s\n", key, v)
				}
				return nil
			case 1:
				v, err := r.ConfigValue(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v)
				return nil
			default:
				return r.SetConfigValue(args[0], args[1])
			}
		},
	}
}
