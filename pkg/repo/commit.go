package repo

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// Commit snapshots the working tree and records it on the current branch.
//
//  1. Validate the message and require a symbolic HEAD
//  2. Read the branch tip (empty for the first commit)
//  3. Snapshot the working tree into blobs and a tree
//  4. Write the commit object with the tip as parent
//  5. Advance the branch ref
//
// Every precondition is checked before the first object is written, so a
// rejected commit leaves the store and refs untouched. The ref update comes
// last; a failure before it leaves at most unreferenced objects behind.
func (r *Repo) Commit(message string) (object.Hash, error) {
	// 1. Preconditions.
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("commit: %w: empty message", ErrMissingArgument)
	}
	if strings.ContainsAny(message, "\r\n") {
		return "", fmt.Errorf("commit: message: %w: contains a line break", ErrUnencodable)
	}
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if head.Detached() {
		return "", fmt.Errorf("commit: %w", ErrDetachedHead)
	}

	// 2. Parent.
	parent, err := r.ReadBranch(head.Branch)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	// 3. Snapshot.
	treeHash, _, err := r.Snapshot()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	// 4. Commit object.
	c := &object.CommitObj{
		TreeHash:  treeHash,
		Parent:    parent,
		Author:    r.Config.User.Name,
		Timestamp: r.now().Format(object.TimestampLayout),
		Message:   message,
	}
	commitHash, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", storeError("commit: write commit", err)
	}

	// 5. Branch ref.
	if err := r.writeBranch(head.Branch, commitHash); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	r.Logger.Debug("committed",
		zap.String("branch", head.Branch),
		zap.String("commit", string(commitHash)),
		zap.String("parent", string(parent)),
	)
	return commitHash, nil
}

// History iterates a commit chain from a start commit back to its root,
// most recent first. It reads one commit per step and stops at the first
// error, which Err reports.
//
//	it := r.History(tip)
//	for it.Next() {
//		use(it.Hash(), it.Commit())
//	}
//	if err := it.Err(); err != nil { ... }
type History struct {
	r      *Repo
	next   object.Hash
	hash   object.Hash
	commit *object.CommitObj
	seen   map[object.Hash]struct{}
	err    error
}

// History returns an iterator positioned before start. An empty start yields
// an empty sequence.
func (r *Repo) History(start object.Hash) *History {
	return &History{r: r, next: start, seen: make(map[object.Hash]struct{})}
}

// Next advances to the next commit and reports whether there is one.
func (it *History) Next() bool {
	if it.err != nil || it.next == "" {
		return false
	}
	h := it.next
	if _, ok := it.seen[h]; ok {
		it.err = fmt.Errorf("history: %w: commit %s is its own ancestor", ErrCorruptObject, h)
		return false
	}
	c, err := it.r.Store.ReadCommit(h)
	if err != nil {
		it.err = storeError("history: read commit "+string(h), err)
		return false
	}
	it.seen[h] = struct{}{}
	it.hash, it.commit, it.next = h, c, c.Parent
	return true
}

// Hash returns the hash of the current commit.
func (it *History) Hash() object.Hash { return it.hash }

// Commit returns the current commit.
func (it *History) Commit() *object.CommitObj { return it.commit }

// Err returns the error that stopped the iteration, if any.
func (it *History) Err() error { return it.err }

// LogEntry is one commit in a Log result.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log walks the history from start, returning up to limit commits newest
// first. A limit <= 0 means no limit.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	it := r.History(start)
	for (limit <= 0 || len(entries) < limit) && it.Next() {
		entries = append(entries, LogEntry{Hash: it.Hash(), Commit: it.Commit()})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return entries, nil
}
