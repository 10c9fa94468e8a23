package repo

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// Snapshot stores every working-tree file as a blob and the resulting
// path-to-blob mapping as one tree object. Identical working trees always
// yield the same tree hash. Paths are all checked before anything is
// written, so an unencodable name leaves the store untouched.
func (r *Repo) Snapshot() (object.Hash, map[string]object.Hash, error) {
	paths, err := r.WorkingFiles()
	if err != nil {
		return "", nil, fmt.Errorf("snapshot: %w", err)
	}
	for _, p := range paths {
		if err := checkPathEncodable(p); err != nil {
			return "", nil, fmt.Errorf("snapshot: %w", err)
		}
	}

	mapping := make(map[string]object.Hash, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(r.workPath(p))
		if err != nil {
			return "", nil, ioError("snapshot: read "+p, err)
		}
		h, err := r.Store.Put(data)
		if err != nil {
			return "", nil, ioError("snapshot: store "+p, err)
		}
		mapping[p] = h
	}

	treeHash, err := r.Store.WriteTree(object.TreeFromMap(mapping))
	if err != nil {
		return "", nil, storeError("snapshot: write tree", err)
	}
	r.Logger.Debug("snapshot", zap.Int("files", len(mapping)), zap.String("tree", string(treeHash)))
	return treeHash, mapping, nil
}

// TreeMap decodes the tree a commit points at into its path mapping.
func (r *Repo) TreeMap(commit object.Hash) (map[string]object.Hash, error) {
	c, err := r.Store.ReadCommit(commit)
	if err != nil {
		return nil, storeError("read commit "+string(commit), err)
	}
	tr, err := r.Store.ReadTree(c.TreeHash)
	if err != nil {
		return nil, storeError("read tree "+string(c.TreeHash), err)
	}
	return tr.Map(), nil
}
