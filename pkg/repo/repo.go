package repo

import (
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/object"
)

// MetaDirName is the name of the metadata directory at the repository root.
const MetaDirName = ".svcs"

// DefaultBranch is the branch created by Init.
const DefaultBranch = "master"

// Repo is the explicit context every operation runs against: the working
// tree root, the metadata directory, and the collaborators built from the
// repository config. Nothing here consults the process working directory.
type Repo struct {
	RootDir string        // working directory root
	MetaDir string        // .svcs/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config
	Logger  *zap.Logger

	now func() time.Time
}

// Option configures Init and Open.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	now       func() time.Time
	digest    string
	cacheSize int
}

// WithLogger sets the logger used by the repository and its store.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now for commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDigest selects the digest algorithm for a new repository. Open ignores
// it; an existing repository keeps the algorithm recorded in its config.
func WithDigest(name string) Option {
	return func(o *options) { o.digest = name }
}

// WithCacheSize bounds the object store read cache.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

func buildOptions(opts []Option) *options {
	o := &options{
		logger:    zap.NewNop(),
		now:       time.Now,
		cacheSize: object.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// SetLogger replaces the logger of the repository and its store.
func (r *Repo) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.Logger = l
	r.Store.SetLogger(l)
}
