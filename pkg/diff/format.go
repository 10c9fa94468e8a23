package diff

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// SplitLines splits file content on newline boundaries. A final line without
// a trailing newline is kept; a trailing newline does not produce an empty
// last line. Empty content has no lines.
func SplitLines(data []byte) []string {
	s := string(data)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	// Remove trailing empty string caused by a final newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FileDiff is the line-level difference for one path.
type FileDiff struct {
	Path   string
	Before []string
	After  []string
	Ops    []Op
}

// DiffLines computes the diff of before and after for path. It returns nil
// when the two line sequences are identical.
func DiffLines(path string, before, after []string) *FileDiff {
	if slices.Equal(before, after) {
		return nil
	}
	return &FileDiff{
		Path:   path,
		Before: before,
		After:  after,
		Ops:    LCS(before, after),
	}
}

// Changes returns the printable operations. Equal operations only align the
// two sides and are dropped; within each run of consecutive changes the
// deletions are listed before the insertions, matching unified diff reading
// order without altering the alignment chosen by LCS.
func (d *FileDiff) Changes() []Op {
	var out, dels, ins []Op
	flush := func() {
		out = append(out, dels...)
		out = append(out, ins...)
		dels = dels[:0]
		ins = ins[:0]
	}
	for _, op := range d.Ops {
		switch op.Type {
		case Equal:
			flush()
		case Delete:
			dels = append(dels, op)
		case Insert:
			ins = append(ins, op)
		}
	}
	flush()
	return out
}

// Format renders d as a single-hunk unified diff:
//
//	diff --svcs a/path b/path
//	--- a/path
//	+++ b/path
//	@@ -1,<len before> +1,<len after> @@
//	-removed line
//	+added line
//
// The hunk always spans both whole files; no context lines are printed.
func Format(w io.Writer, d *FileDiff) error {
	if d == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff --svcs a/%s b/%s\n", d.Path, d.Path)
	fmt.Fprintf(&b, "--- a/%s\n", d.Path)
	fmt.Fprintf(&b, "+++ b/%s\n", d.Path)
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", len(d.Before), len(d.After))
	for _, op := range d.Changes() {
		switch op.Type {
		case Delete:
			fmt.Fprintf(&b, "-%s\n", op.Line)
		case Insert:
			fmt.Fprintf(&b, "+%s\n", op.Line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatBytes diffs two file contents and renders the result. Identical
// contents produce no output at all, header included.
func FormatBytes(w io.Writer, path string, before, after []byte) error {
	return Format(w, DiffLines(path, SplitLines(before), SplitLines(after)))
}
