package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odvcencio/simplevcs/pkg/diff"
	"github.com/odvcencio/simplevcs/pkg/repo"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff [commit [commit]]",
		Short: "Show line changes between commits or against the working tree",
		Long: "Show line changes.\n\n" +
			"  svcs diff            HEAD against the working tree\n" +
			"  svcs diff <a>        <a> against the working tree\n" +
			"  svcs diff <a> <b>    <a> against <b>\n\n" +
			"Targets are branch names, HEAD, or full commit digests.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo(cmd)
			if err != nil {
				return err
			}

			fds, err := r.DiffTargets(args...)
			if err != nil {
				return err
			}

			mode := a.color
			if mode == "" {
				mode = r.Config.Diff.Color
			}
			out := cmd.OutOrStdout()
			enabled, err := colorEnabled(mode, out)
			if err != nil {
				return err
			}
			for _, fd := range fds {
				if err := printColoredDiff(out, fd, enabled); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// colorEnabled decides whether to emit ANSI colors to w. In auto mode colors
// are used only when w is the process stdout and it is a terminal.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case repo.ColorAlways:
		return true, nil
	case repo.ColorNever:
		return false, nil
	case repo.ColorAuto, "":
		f, ok := w.(*os.File)
		return ok && f == os.Stdout && !color.NoColor, nil
	default:
		return false, fmt.Errorf("--color must be %s, %s or %s, got %q", repo.ColorAuto, repo.ColorAlways, repo.ColorNever, mode)
	}
}

// printColoredDiff renders one file diff: the three header lines bold, the
// hunk header cyan, deletions red and insertions green.
func printColoredDiff(w io.Writer, fd *diff.FileDiff, enabled bool) error {
	var buf bytes.Buffer
	if err := diff.Format(&buf, fd); err != nil {
		return err
	}

	header := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	for _, c := range []*color.Color{header, hunk, added, removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		var c *color.Color
		switch {
		case i < 3:
			c = header
		case i == 3:
			c = hunk
		case strings.HasPrefix(line, "+"):
			c = added
		default:
			c = removed
		}
		if _, err := c.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
