package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/simplevcs/pkg/digest"
)

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Path so identical
// snapshots always produce identical bytes. Each entry is one line:
//
//	blob <hash> <path>
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sortEntries(sorted)

	var buf bytes.Buffer
	for _, e := range sorted {
		if e.Path == "" {
			return nil, fmt.Errorf("marshal tree: %w: empty path", ErrUnencodable)
		}
		if strings.ContainsRune(e.Path, '\n') {
			return nil, fmt.Errorf("marshal tree: %w: path %q contains a newline", ErrUnencodable, e.Path)
		}
		if !digest.IsHex(string(e.BlobHash)) {
			return nil, fmt.Errorf("marshal tree: %w: path %q has blob hash %q", ErrInvalidHash, e.Path, e.BlobHash)
		}
		fmt.Fprintf(&buf, "blob %s %s\n", e.BlobHash, e.Path)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a TreeObj from its serialized form. The second
// space-delimited token of each line is the hash; everything after the single
// space that follows it is the path, so paths may contain spaces.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return tr, nil
	}
	for _, line := range strings.Split(text, "\n") {
		kind, rest, ok := strings.Cut(line, " ")
		if !ok || kind != "blob" {
			return nil, fmt.Errorf("unmarshal tree: %w: malformed entry %q", ErrCorruptObject, line)
		}
		h, p, ok := strings.Cut(rest, " ")
		if !ok || p == "" {
			return nil, fmt.Errorf("unmarshal tree: %w: entry %q has no path", ErrCorruptObject, line)
		}
		if !digest.IsHex(h) {
			return nil, fmt.Errorf("unmarshal tree: %w: entry %q has bad hash", ErrCorruptObject, line)
		}
		tr.Entries = append(tr.Entries, TreeEntry{Path: p, BlobHash: Hash(h)})
	}
	return tr, nil
}

func sortEntries(entries []TreeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj as labeled lines:
//
//	tree H
//	parent H     (omitted for a root commit)
//	author A
//	timestamp T
//	message M
func MarshalCommit(c *CommitObj) ([]byte, error) {
	if !digest.IsHex(string(c.TreeHash)) {
		return nil, fmt.Errorf("marshal commit: %w: tree %q", ErrInvalidHash, c.TreeHash)
	}
	if c.Parent != "" && !digest.IsHex(string(c.Parent)) {
		return nil, fmt.Errorf("marshal commit: %w: parent %q", ErrInvalidHash, c.Parent)
	}
	fields := []struct{ name, val string }{
		{"author", c.Author},
		{"timestamp", c.Timestamp},
		{"message", c.Message},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.val, "\r\n") {
			return nil, fmt.Errorf("marshal commit: %w: %s contains a line break", ErrUnencodable, f.name)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", c.Parent)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "timestamp %s\n", c.Timestamp)
	fmt.Fprintf(&buf, "message %s\n", c.Message)
	return buf.Bytes(), nil
}

// UnmarshalCommit parses a CommitObj from its serialized form. Unknown header
// keys are skipped; a missing tree line is an ErrCorruptObject.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	c := &CommitObj{}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		key, val, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			c.TreeHash = Hash(strings.TrimSpace(val))
		case "parent":
			if c.Parent != "" {
				return nil, fmt.Errorf("unmarshal commit: %w: more than one parent", ErrCorruptObject)
			}
			c.Parent = Hash(strings.TrimSpace(val))
		case "author":
			c.Author = val
		case "timestamp":
			c.Timestamp = val
		case "message":
			c.Message = val
		}
	}
	if c.TreeHash == "" {
		return nil, fmt.Errorf("unmarshal commit: %w: missing tree", ErrCorruptObject)
	}
	if !digest.IsHex(string(c.TreeHash)) {
		return nil, fmt.Errorf("unmarshal commit: %w: bad tree hash %q", ErrCorruptObject, c.TreeHash)
	}
	if c.Parent != "" && !digest.IsHex(string(c.Parent)) {
		return nil, fmt.Errorf("unmarshal commit: %w: bad parent hash %q", ErrCorruptObject, c.Parent)
	}
	return c, nil
}
