package repo

import (
	"fmt"
	"os"
	"sort"

	"github.com/odvcencio/simplevcs/pkg/diff"
	"github.com/odvcencio/simplevcs/pkg/object"
)

// Side is one side of a diff: a commit's tree or the live working tree.
type Side struct {
	Commit   object.Hash
	Worktree bool
}

// CommitSide returns the side for a commit's tree.
func CommitSide(h object.Hash) Side { return Side{Commit: h} }

// WorktreeSide returns the side for the working tree.
func WorktreeSide() Side { return Side{Worktree: true} }

func (s Side) String() string {
	if s.Worktree {
		return "working tree"
	}
	return string(s.Commit)
}

// sideFiles lists one side's paths. For a commit the values are blob hashes;
// for the working tree they are empty and content is read from disk.
func (r *Repo) sideFiles(s Side) (map[string]object.Hash, error) {
	if !s.Worktree {
		return r.TreeMap(s.Commit)
	}
	paths, err := r.WorkingFiles()
	if err != nil {
		return nil, err
	}
	files := make(map[string]object.Hash, len(paths))
	for _, p := range paths {
		files[p] = ""
	}
	return files, nil
}

// sideContent returns the content of path on one side, or nil when the side
// lacks the path. Working-tree content never enters the object store.
func (r *Repo) sideContent(s Side, files map[string]object.Hash, path string) ([]byte, error) {
	h, ok := files[path]
	if !ok {
		return nil, nil
	}
	if s.Worktree {
		data, err := os.ReadFile(r.workPath(path))
		if err != nil {
			return nil, ioError("diff: read "+path, err)
		}
		return data, nil
	}
	data, err := r.Store.Get(h)
	if err != nil {
		return nil, storeError("diff: "+path, err)
	}
	return data, nil
}

// DiffSides compares a and b over the sorted union of their paths. A path
// missing from one side is compared against no lines, so it shows up as all
// insertions or all deletions. Paths whose lines are identical are omitted.
func (r *Repo) DiffSides(a, b Side) ([]*diff.FileDiff, error) {
	filesA, err := r.sideFiles(a)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", a, err)
	}
	filesB, err := r.sideFiles(b)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", b, err)
	}

	union := make([]string, 0, len(filesA)+len(filesB))
	for p := range filesA {
		union = append(union, p)
	}
	for p := range filesB {
		if _, ok := filesA[p]; !ok {
			union = append(union, p)
		}
	}
	sort.Strings(union)

	var out []*diff.FileDiff
	for _, p := range union {
		before, err := r.sideContent(a, filesA, p)
		if err != nil {
			return nil, err
		}
		after, err := r.sideContent(b, filesB, p)
		if err != nil {
			return nil, err
		}
		if fd := diff.DiffLines(p, diff.SplitLines(before), diff.SplitLines(after)); fd != nil {
			out = append(out, fd)
		}
	}
	return out, nil
}

// DiffTargets implements the three command forms:
//
//	no targets      HEAD against the working tree
//	one target      that commit against the working tree
//	two targets     first commit against second commit
//
// Targets are resolved with Resolve.
func (r *Repo) DiffTargets(targets ...string) ([]*diff.FileDiff, error) {
	if len(targets) > 2 {
		return nil, fmt.Errorf("diff: at most two targets, got %d", len(targets))
	}
	if len(targets) == 0 {
		targets = []string{"HEAD"}
	}

	a, _, err := r.Resolve(targets[0])
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	if len(targets) == 1 {
		return r.DiffSides(CommitSide(a), WorktreeSide())
	}
	b, _, err := r.Resolve(targets[1])
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	return r.DiffSides(CommitSide(a), CommitSide(b))
}
