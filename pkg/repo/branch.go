package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// Branch is one entry of ListBranches.
type Branch struct {
	Name    string
	Commit  object.Hash // "" when the branch has no commits
	Current bool        // HEAD tracks this branch
}

// validateBranchName enforces the flat refs/heads namespace: a branch name is
// a single path element that cannot be confused with HEAD or a flag.
func validateBranchName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidBranchName)
	case name == "HEAD":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidBranchName, name)
	case strings.HasPrefix(name, "."), strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q may not start with %q", ErrInvalidBranchName, name, name[:1])
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidBranchName, name)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidBranchName, name)
	}
	return nil
}

// CreateBranch creates a branch pointing at the commit HEAD currently
// resolves to, which is empty before the first commit. Returns
// ErrBranchExists if the branch is already present.
func (r *Repo) CreateBranch(name string) (object.Hash, error) {
	if err := validateBranchName(name); err != nil {
		return "", fmt.Errorf("create branch: %w", err)
	}
	if r.BranchExists(name) {
		return "", fmt.Errorf("create branch %q: %w", name, ErrBranchExists)
	}
	target, err := r.HeadCommit()
	if err != nil {
		return "", fmt.Errorf("create branch %q: %w", name, err)
	}
	if err := r.writeBranch(name, target); err != nil {
		return "", fmt.Errorf("create branch: %w", err)
	}
	return target, nil
}

// DeleteBranch removes refs/heads/<name>. The branch HEAD tracks cannot be
// deleted.
func (r *Repo) DeleteBranch(name string) error {
	if err := validateBranchName(name); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if current == name {
		return fmt.Errorf("delete branch %q: %w", name, ErrCannotDeleteCurrentBranch)
	}

	if err := os.Remove(r.branchPath(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete branch %q: %w", name, ErrBranchNotFound)
		}
		return ioError(fmt.Sprintf("delete branch %q", name), err)
	}
	return nil
}

// ListBranches reads refs/heads/ and returns every branch sorted by name,
// flagging the one HEAD tracks. No branch is flagged when HEAD is detached.
func (r *Repo) ListBranches() ([]Branch, error) {
	headsDir := filepath.Join(r.MetaDir, "refs", "heads")

	entries, err := os.ReadDir(headsDir)
	if err != nil {
		return nil, ioError("list branches", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []Branch
	for _, e := range entries {
		if !e.Type().IsRegular() || validateBranchName(e.Name()) != nil {
			continue
		}
		h, err := r.ReadBranch(e.Name())
		if err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}
		branches = append(branches, Branch{
			Name:    e.Name(),
			Commit:  h,
			Current: e.Name() == current,
		})
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// CurrentBranch returns the branch HEAD tracks, or "" when HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return head.Branch, nil
}
