package object

import "errors"

var (
	// ErrNotFound is returned when no object is stored under a digest.
	ErrNotFound = errors.New("object not found")
	// ErrCorruptObject is returned when tree or commit text cannot be parsed
	// or lacks a mandatory field.
	ErrCorruptObject = errors.New("corrupt object")
	// ErrInvalidHash is returned for strings that are not full hex digests.
	ErrInvalidHash = errors.New("invalid object hash")
	// ErrUnencodable is returned when a value contains a character the text
	// format uses as a record delimiter.
	ErrUnencodable = errors.New("value cannot be encoded")
)

// TreeEntry maps one repository-relative, forward-slash path to a blob.
type TreeEntry struct {
	Path     string
	BlobHash Hash
}

// TreeObj is a whole-directory snapshot: every tracked file, no directory
// entries. Serialized entries are always sorted by Path.
type TreeObj struct {
	Entries []TreeEntry
}

// Map returns the path -> blob hash mapping.
func (t *TreeObj) Map() map[string]Hash {
	m := make(map[string]Hash, len(t.Entries))
	for _, e := range t.Entries {
		m[e.Path] = e.BlobHash
	}
	return m
}

// TreeFromMap builds a TreeObj from a path -> blob hash mapping.
func TreeFromMap(m map[string]Hash) *TreeObj {
	t := &TreeObj{Entries: make([]TreeEntry, 0, len(m))}
	for p, h := range m {
		t.Entries = append(t.Entries, TreeEntry{Path: p, BlobHash: h})
	}
	sortEntries(t.Entries)
	return t
}

// CommitObj points at a tree and at most one parent commit.
type CommitObj struct {
	TreeHash  Hash
	Parent    Hash // empty for a root commit
	Author    string
	Timestamp string // local time, "2006-01-02 15:04:05"
	Message   string
}

// TimestampLayout is the layout of CommitObj.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"
