package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/odvcencio/simplevcs/pkg/digest"
	"github.com/odvcencio/simplevcs/pkg/object"
)

// Init creates a new repository at path. It creates the .svcs/ directory
// structure (objects/, refs/heads/, HEAD, config.toml), the default branch
// with an empty pointer, and a HEAD tracking that branch. Returns
// ErrAlreadyInitialized if a .svcs/ directory already exists.
func Init(path string, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, ioError("init: abs path", err)
	}
	metaDir := filepath.Join(root, MetaDirName)

	if _, err := os.Stat(metaDir); err == nil {
		return nil, fmt.Errorf("init: %w at %s", ErrAlreadyInitialized, metaDir)
	}

	cfg := DefaultConfig()
	if o.digest != "" {
		cfg.Core.Digest = o.digest
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	dirs := []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, ioError("init: mkdir "+d, err)
		}
	}

	if err := writeConfigFile(filepath.Join(metaDir, ConfigFileName), cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r, err := newRepo(root, metaDir, cfg, o)
	if err != nil {
		return nil, err
	}
	if err := r.writeBranch(DefaultBranch, ""); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.setHead(Head{Branch: DefaultBranch}); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.Logger.Debug("repository initialized", zap.String("root", root), zap.String("digest", cfg.Core.Digest))
	return r, nil
}

// Open searches upward from path for a .svcs/ directory and opens the
// repository. Returns ErrNotInitialized if none is found.
func Open(path string, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)

	// Resolve to absolute path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ioError("open: abs path", err)
	}

	cur := abs
	for {
		metaDir := filepath.Join(cur, MetaDirName)
		if isRepoDir(metaDir) {
			cfg, err := LoadConfig(filepath.Join(metaDir, ConfigFileName))
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return newRepo(cur, metaDir, cfg, o)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .svcs/.
			return nil, fmt.Errorf("open %s: %w", abs, ErrNotInitialized)
		}
		cur = parent
	}
}

// isRepoDir reports whether metaDir holds the full metadata layout.
func isRepoDir(metaDir string) bool {
	for _, p := range []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
	} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			return false
		}
	}
	info, err := os.Stat(filepath.Join(metaDir, "HEAD"))
	return err == nil && info.Mode().IsRegular()
}

func newRepo(root, metaDir string, cfg *Config, o *options) (*Repo, error) {
	sum, err := digest.Lookup(cfg.Core.Digest)
	if err != nil {
		return nil, err
	}
	return &Repo{
		RootDir: root,
		MetaDir: metaDir,
		Store: object.NewStore(metaDir,
			object.WithDigest(sum),
			object.WithLogger(o.logger),
			object.WithCacheSize(o.cacheSize),
		),
		Config: cfg,
		Logger: o.logger,
		now:    o.now,
	}, nil
}
