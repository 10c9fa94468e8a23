package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

const symbolicPrefix = "ref: refs/heads/"

// Head is the current position. Exactly one field is set: Branch when HEAD
// tracks a branch (symbolic), Commit when HEAD is detached.
type Head struct {
	Branch string
	Commit object.Hash
}

// Detached reports whether HEAD points directly at a commit.
func (h Head) Detached() bool {
	return h.Branch == ""
}

func (h Head) String() string {
	if h.Detached() {
		return string(h.Commit)
	}
	return symbolicPrefix + h.Branch
}

func (r *Repo) headPath() string {
	return filepath.Join(r.MetaDir, "HEAD")
}

// Head reads .svcs/HEAD. "ref: refs/heads/<name>" is a symbolic HEAD; a bare
// digest is a detached HEAD.
func (r *Repo) Head() (Head, error) {
	data, err := os.ReadFile(r.headPath())
	if err != nil {
		return Head{}, ioError("head", err)
	}
	content := strings.TrimSpace(string(data))

	if strings.HasPrefix(content, symbolicPrefix) {
		name := strings.TrimPrefix(content, symbolicPrefix)
		if name == "" {
			return Head{}, fmt.Errorf("head: %w: empty branch name", ErrCorruptObject)
		}
		return Head{Branch: name}, nil
	}
	h, err := object.ParseHash(content)
	if err != nil {
		return Head{}, fmt.Errorf("head: %w: %q", ErrCorruptObject, content)
	}
	return Head{Commit: h}, nil
}

// setHead rewrites HEAD. It is the last step of every transition so a
// failure earlier leaves the previous state intact.
func (r *Repo) setHead(h Head) error {
	if err := writeFileAtomic(r.headPath(), []byte(h.String()+"\n")); err != nil {
		return ioError("update HEAD", err)
	}
	r.Logger.Debug("HEAD moved", zap.String("head", h.String()))
	return nil
}

// HeadCommit resolves HEAD to a commit hash. It returns "" when HEAD tracks a
// branch that has no commits yet.
func (r *Repo) HeadCommit() (object.Hash, error) {
	head, err := r.Head()
	if err != nil {
		return "", err
	}
	if head.Detached() {
		return head.Commit, nil
	}
	return r.ReadBranch(head.Branch)
}

func (r *Repo) branchPath(name string) string {
	return filepath.Join(r.MetaDir, "refs", "heads", name)
}

// ReadBranch returns the commit a branch points at, or "" for a branch with
// no commits. Missing branches yield ErrBranchNotFound.
func (r *Repo) ReadBranch(name string) (object.Hash, error) {
	if err := validateBranchName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(r.branchPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read branch %q: %w", name, ErrBranchNotFound)
		}
		return "", ioError(fmt.Sprintf("read branch %q", name), err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", nil
	}
	h, err := object.ParseHash(content)
	if err != nil {
		return "", fmt.Errorf("read branch %q: %w: %q", name, ErrCorruptObject, content)
	}
	return h, nil
}

// BranchExists reports whether refs/heads/<name> exists.
func (r *Repo) BranchExists(name string) bool {
	if validateBranchName(name) != nil {
		return false
	}
	info, err := os.Stat(r.branchPath(name))
	return err == nil && info.Mode().IsRegular()
}

// writeBranch points a branch at h ("" for no commits). The ref file is
// replaced by rename, so readers never observe a partial ref.
func (r *Repo) writeBranch(name string, h object.Hash) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	content := ""
	if h != "" {
		content = string(h) + "\n"
	}
	if err := writeFileAtomic(r.branchPath(name), []byte(content)); err != nil {
		return ioError(fmt.Sprintf("update branch %q", name), err)
	}
	r.Logger.Debug("ref updated", zap.String("branch", name), zap.String("commit", string(h)))
	return nil
}

// Resolve turns a user-supplied target into a commit hash. It accepts, in
// order: "HEAD", an existing branch name, or a full digest of a stored
// commit. isBranch reports whether target named a branch.
func (r *Repo) Resolve(target string) (h object.Hash, isBranch bool, err error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false, fmt.Errorf("resolve: %w: empty target", ErrMissingArgument)
	}

	if target == "HEAD" {
		h, err := r.HeadCommit()
		if err != nil {
			return "", false, err
		}
		if h == "" {
			return "", false, fmt.Errorf("resolve HEAD: %w: no commits yet", ErrUnknownTarget)
		}
		return h, false, nil
	}

	if r.BranchExists(target) {
		h, err := r.ReadBranch(target)
		if err != nil {
			return "", false, err
		}
		if h == "" {
			return "", true, fmt.Errorf("resolve %q: %w: branch has no commits", target, ErrUnknownTarget)
		}
		return h, true, nil
	}

	h, err = object.ParseHash(target)
	if err != nil || !r.Store.Has(h) {
		return "", false, fmt.Errorf("resolve %q: %w", target, ErrUnknownTarget)
	}
	if _, err := r.Store.ReadCommit(h); err != nil {
		if errors.Is(err, object.ErrCorruptObject) {
			return "", false, fmt.Errorf("resolve %q: %w: not a commit", target, ErrUnknownTarget)
		}
		return "", false, storeError("resolve "+target, err)
	}
	return h, false, nil
}

// storeError passes object-level sentinel errors through with context and
// classifies anything else as an I/O failure.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, object.ErrNotFound),
		errors.Is(err, object.ErrCorruptObject),
		errors.Is(err, object.ErrUnencodable),
		errors.Is(err, object.ErrInvalidHash):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return ioError(op, err)
	}
}
