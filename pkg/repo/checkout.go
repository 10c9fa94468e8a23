package repo

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// Checkout switches the working tree and HEAD to target.
//
// Algorithm:
//  1. Resolve target: an existing branch name first, then a commit hash.
//  2. Read the target commit and decode its tree.
//  3. Clean the working tree (everything but the metadata directory).
//  4. Restore every file of the target tree.
//  5. Update HEAD (symbolic for a branch, detached for a hash).
//
// Uncommitted work is discarded without confirmation. A failure during
// restore aborts immediately and leaves the tree partially restored; HEAD
// is only moved after a complete restore.
func (r *Repo) Checkout(target string) (Head, error) {
	// "HEAD" re-checks-out whatever HEAD already names.
	if strings.TrimSpace(target) == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return Head{}, fmt.Errorf("checkout: %w", err)
		}
		if !head.Detached() {
			target = head.Branch
		}
	}

	// 1. Resolve.
	commitHash, isBranch, err := r.Resolve(target)
	if err != nil {
		return Head{}, fmt.Errorf("checkout: %w", err)
	}
	next := Head{Commit: commitHash}
	if isBranch {
		next = Head{Branch: strings.TrimSpace(target)}
	}

	// 2. Target tree.
	mapping, err := r.TreeMap(commitHash)
	if err != nil {
		return Head{}, fmt.Errorf("checkout: %w", err)
	}

	// 3. Clean.
	if err := r.Clean(); err != nil {
		return Head{}, fmt.Errorf("checkout: %w", err)
	}

	// 4. Restore.
	if err := r.Restore(mapping); err != nil {
		return Head{}, fmt.Errorf("checkout: %w", err)
	}

	// 5. HEAD.
	if err := r.setHead(next); err != nil {
		return Head{}, fmt.Errorf("checkout: %w", err)
	}
	return next, nil
}

// Clean removes every entry directly under the repository root except the
// metadata directory, recursing into directories. Nothing is backed up.
func (r *Repo) Clean() error {
	entries, err := os.ReadDir(r.RootDir)
	if err != nil {
		return ioError("clean", err)
	}
	removed := 0
	for _, e := range entries {
		if e.Name() == MetaDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(r.RootDir, e.Name())); err != nil {
			return ioError("clean: remove "+e.Name(), err)
		}
		removed++
	}
	r.Logger.Debug("working tree cleaned", zap.Int("entries", removed))
	return nil
}

// Restore writes every path of mapping into the working tree with the bytes
// of its blob, creating parent directories and overwriting existing files.
// Paths are written in sorted order. A path that would land outside the
// working tree or inside the metadata directory marks the tree as corrupt.
func (r *Repo) Restore(mapping map[string]object.Hash) error {
	paths := make([]string, 0, len(mapping))
	for p := range mapping {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := checkRestorePath(p); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		data, err := r.Store.Get(mapping[p])
		if err != nil {
			return storeError("restore "+p, err)
		}

		abs := r.workPath(p)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return ioError("restore: mkdir for "+p, err)
		}
		if err := os.WriteFile(abs, data, 0o644); err != nil {
			return ioError("restore: write "+p, err)
		}
	}
	r.Logger.Debug("working tree restored", zap.Int("files", len(paths)))
	return nil
}

func checkRestorePath(p string) error {
	clean := path.Clean(p)
	switch {
	case p == "" || p == "." || clean != p || path.IsAbs(p) || filepath.IsAbs(filepath.FromSlash(p)):
		return fmt.Errorf("%w: tree path %q is not a clean relative path", ErrCorruptObject, p)
	case clean == ".." || strings.HasPrefix(clean, "../"):
		return fmt.Errorf("%w: tree path %q escapes the working tree", ErrCorruptObject, p)
	case clean == MetaDirName || strings.HasPrefix(clean, MetaDirName+"/") ||
		strings.Contains(clean, "/"+MetaDirName+"/") || strings.HasSuffix(clean, "/"+MetaDirName):
		return fmt.Errorf("%w: tree path %q is inside %s", ErrCorruptObject, p, MetaDirName)
	}
	return nil
}
