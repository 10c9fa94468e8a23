package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/simplevcs/pkg/digest"
	"github.com/odvcencio/simplevcs/pkg/logging"
)

// ConfigFileName is the name of the config file inside the metadata directory.
const ConfigFileName = "config.toml"

// DefaultAuthor is the author tag written into commits when none is configured.
const DefaultAuthor = "Student"

// Color modes accepted in [diff] color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config stores repository-local settings.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
	Log  LogConfig  `toml:"log"`
	Diff DiffConfig `toml:"diff"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

type CoreConfig struct {
	// Digest names the object hash; it is fixed when the repository is created.
	Digest string `toml:"digest"`
}

type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

type DiffConfig struct {
	Color string `toml:"color,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		User: UserConfig{Name: DefaultAuthor},
		Core: CoreConfig{Digest: digest.Default},
		Diff: DiffConfig{Color: ColorAuto},
	}
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.User.Name) == "" {
		c.User.Name = DefaultAuthor
	}
	if strings.TrimSpace(c.Core.Digest) == "" {
		c.Core.Digest = digest.Default
	}
	if strings.TrimSpace(c.Diff.Color) == "" {
		c.Diff.Color = ColorAuto
	}
}

func (c *Config) validate() error {
	if _, err := digest.Lookup(c.Core.Digest); err != nil {
		return err
	}
	switch c.Diff.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("diff.color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Diff.Color)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if strings.ContainsAny(c.User.Name, "\r\n") {
		return fmt.Errorf("user.name must be a single line")
	}
	return nil
}

// LoadConfig reads the config file at path. A missing file yields
// DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

func (r *Repo) configPath() string {
	return filepath.Join(r.MetaDir, ConfigFileName)
}

// ReadConfig re-reads the repository config from disk.
func (r *Repo) ReadConfig() (*Config, error) {
	return LoadConfig(r.configPath())
}

// WriteConfig atomically writes the repository config and makes it current.
// The digest algorithm recorded on disk cannot change: every stored object
// is keyed by it.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	onDisk, err := r.ReadConfig()
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if cfg.Core.Digest != onDisk.Core.Digest {
		return fmt.Errorf("write config: core.digest is fixed at %q", onDisk.Core.Digest)
	}
	if err := writeConfigFile(r.configPath(), cfg); err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

// ConfigKeys lists the keys accepted by ConfigValue and SetConfigValue.
var ConfigKeys = []string{"core.digest", "diff.color", "log.level", "user.name"}

func (c *Config) field(key string) (*string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "core.digest":
		return &c.Core.Digest, nil
	case "diff.color":
		return &c.Diff.Color, nil
	case "log.level":
		return &c.Log.Level, nil
	case "user.name":
		return &c.User.Name, nil
	}
	return nil, fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys, ", "))
}

// ConfigValue returns the on-disk value of key.
func (r *Repo) ConfigValue(key string) (string, error) {
	cfg, err := r.ReadConfig()
	if err != nil {
		return "", err
	}
	f, err := cfg.field(key)
	if err != nil {
		return "", err
	}
	return *f, nil
}

// SetConfigValue sets key to value and writes the config. core.digest only
// accepts its current value.
func (r *Repo) SetConfigValue(key, value string) error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return err
	}
	f, err := cfg.field(key)
	if err != nil {
		return err
	}
	*f = value
	return r.WriteConfig(cfg)
}

func writeConfigFile(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return ioError("write config", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
