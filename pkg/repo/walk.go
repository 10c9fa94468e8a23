package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IgnoreFunc reports whether a walk entry should be skipped. rel is the
// forward-slash path relative to the walk root. Returning true for a
// directory skips its whole subtree.
type IgnoreFunc func(rel string, d fs.DirEntry) bool

// IgnoreMetaDir skips the metadata directory and everything beneath it.
func IgnoreMetaDir(rel string, d fs.DirEntry) bool {
	return d.IsDir() && d.Name() == MetaDirName
}

// WalkFiles calls fn for every regular file under root that ignore does not
// exclude, in lexical order. A symlink to a regular file counts as that file;
// directories, symlinks to anything else and special files are never passed
// to fn. Directory symlinks are not descended. A nil ignore skips nothing.
func WalkFiles(root string, ignore IgnoreFunc, fn func(rel, abs string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Skip the root directory itself.
		if rel == "." {
			return nil
		}

		if ignore != nil && ignore(rel, d) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			return fn(rel, path)
		}

		// Only track regular files.
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(rel, path)
	})
}

// WorkingFiles returns the sorted relative paths of the working tree, the
// regular files under the root excluding the metadata directory.
func (r *Repo) WorkingFiles() ([]string, error) {
	var paths []string
	err := WalkFiles(r.RootDir, IgnoreMetaDir, func(rel, _ string) error {
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, ioError("walk working tree", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// workPath maps a forward-slash relative path onto the working tree.
func (r *Repo) workPath(rel string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(rel))
}

func checkPathEncodable(rel string) error {
	if strings.ContainsRune(rel, '\n') {
		return fmt.Errorf("path %q: %w: contains a newline", rel, ErrUnencodable)
	}
	return nil
}
