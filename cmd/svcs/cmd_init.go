package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/digest"
	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newInitCmd(a *app) *cobra.Command {
	var digestName string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty svcs repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.dir
			if len(args) > 0 {
				path = args[0]
				if !filepath.IsAbs(path) {
					path = filepath.Join(a.dir, path)
				}
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			// Ensure the target directory exists.
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			logger, err := a.newLogger(cmd, "")
			if err != nil {
				return err
			}
			r, err := repo.Init(abs, repo.WithDigest(digestName), repo.WithLogger(logger))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty svcs repository in %s\n", r.MetaDir+string(filepath.Separator))
			return nil
		},
	}

	cmd.Flags().StringVar(&digestName, "digest", digest.Default, fmt.Sprintf("object digest algorithm %v", digest.Names()))

	return cmd
}
