package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/digest"
)

// DefaultCacheSize is the number of objects kept in the read cache.
const DefaultCacheSize = 256

// Store is a write-once, content-addressed object store with a flat layout:
// objects/<hash>. Blobs, trees and commits share the one namespace; the
// stored bytes are exactly the object content, with no type envelope.
type Store struct {
	root   string
	sum    digest.Func
	cache  *lru.Cache[Hash, []byte]
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDigest selects the digest function used to key objects.
func WithDigest(fn digest.Func) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.sum = fn
		}
	}
}

// WithLogger attaches a logger for write/dedup events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheSize bounds the read cache. A size <= 0 disables caching.
func WithCacheSize(n int) StoreOption {
	return func(s *Store) {
		if n <= 0 {
			s.cache = nil
			return
		}
		c, err := lru.New[Hash, []byte](n)
		if err == nil {
			s.cache = c
		}
	}
}

// SetLogger replaces the logger. A nil logger discards events.
func (s *Store) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// NewStore creates a Store rooted at the given metadata directory. The
// objects/ subdirectory is created lazily on first write.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		root:   root,
		sum:    digest.SHA1,
		logger: zap.NewNop(),
	}
	WithCacheSize(DefaultCacheSize)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory holding object files.
func (s *Store) Dir() string {
	return filepath.Join(s.root, "objects")
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h))
}

// Hash computes the key data would be stored under without writing it.
func (s *Store) Hash(data []byte) Hash {
	return HashBytes(s.sum, data)
}

// Has reports whether the store contains an object with the given hash.
// Strings that are not well-formed digests are never present.
func (s *Store) Has(h Hash) bool {
	if !digest.IsHex(string(h)) {
		return false
	}
	if s.cache != nil && s.cache.Contains(h) {
		return true
	}
	info, err := os.Stat(s.objectPath(h))
	return err == nil && info.Mode().IsRegular()
}

// Put stores data and returns its content hash. If an object already exists
// under that hash nothing is written, so repeated puts of identical content
// perform at most one physical write. Writes go to a temp file that is then
// renamed into place.
func (s *Store) Put(data []byte) (Hash, error) {
	h := s.Hash(data)

	// Fast path: already exists.
	if s.Has(h) {
		s.logger.Debug("object exists", zap.String("hash", string(h)), zap.Int("size", len(data)))
		return h, nil
	}

	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	s.logger.Debug("object written", zap.String("hash", string(h)), zap.Int("size", len(data)))
	return h, nil
}

// Get retrieves the bytes stored under h. A missing object, or a string that
// is not a digest, yields an error wrapping ErrNotFound. The returned slice
// is owned by the caller.
func (s *Store) Get(h Hash) ([]byte, error) {
	if !digest.IsHex(string(h)) {
		return nil, fmt.Errorf("object read %q: %w", h, ErrNotFound)
	}
	if s.cache != nil {
		if data, ok := s.cache.Get(h); ok {
			return cloneBytes(data), nil
		}
	}

	data, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	if s.cache != nil {
		s.cache.Add(h, cloneBytes(data))
	}
	return data, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	data, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Put(data)
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	data, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	tr, err := UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return tr, nil
}

// WriteCommit serializes and stores a CommitObj. The referenced tree and
// parent must already be in the store, so a commit can never point forward
// to an object written after it and history stays acyclic.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	data, err := MarshalCommit(c)
	if err != nil {
		return "", err
	}
	if !s.Has(c.TreeHash) {
		return "", fmt.Errorf("write commit: tree %s: %w", c.TreeHash, ErrNotFound)
	}
	if c.Parent != "" && !s.Has(c.Parent) {
		return "", fmt.Errorf("write commit: parent %s: %w", c.Parent, ErrNotFound)
	}
	return s.Put(data)
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	data, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
