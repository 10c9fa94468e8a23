package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/logging"
	"github.com/odvcencio/simplevcs/pkg/repo"
)

const version = "0.1.0-dev"

// app holds the persistent flags shared by every subcommand.
type app struct {
	dir      string
	logLevel string
	color    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code. Errors
// are reported as a single "svcs: <message>" line.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "svcs: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "svcs",
		Short:         "A minimal content-addressed version control system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from $"+logging.EnvLevel+" or config)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "diff colors: auto, always, never (default from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCommitCmd(a))
	root.AddCommand(newCheckoutCmd(a))
	root.AddCommand(newBranchCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newDiffCmd(a))
	root.AddCommand(newArchiveCmd(a))
	root.AddCommand(newCatObjectCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "svcs %s\n", version)
		},
	}
}

// newLogger builds the diagnostic logger for cmd. configLevel is the
// repository's [log] level, if a repository is open.
func (a *app) newLogger(cmd *cobra.Command, configLevel string) (*zap.Logger, error) {
	level := logging.ResolveLevel(a.logLevel, configLevel)
	l, err := logging.NewWithWriter(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return l, nil
}

// openRepo finds the repository containing a.dir and attaches a logger at
// the level its config asks for.
func (a *app) openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	r, err := repo.Open(a.dir)
	if err != nil {
		return nil, err
	}
	logger, err := a.newLogger(cmd, r.Config.Log.Level)
	if err != nil {
		return nil, err
	}
	r.SetLogger(logger)
	return r, nil
}
