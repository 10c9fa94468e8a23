// Package logging builds the zap logger shared by the command line and the
// repository packages.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// EnvLevel is the environment variable consulted for the log level.
const EnvLevel = "SVCS_LOG"

// NewWithWriter returns a console logger writing to w at the given level
// ("debug", "info", "warn", "error"). An empty level means DefaultLevel.
func NewWithWriter(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// ParseLevel parses a level name. An empty string means DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, err
	}
	return lvl, nil
}

// ResolveLevel picks the first non-empty level from flag, the EnvLevel
// environment variable and the repository config, falling back to
// DefaultLevel.
func ResolveLevel(flag, config string) string {
	for _, candidate := range []string{flag, os.Getenv(EnvLevel), config} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return DefaultLevel
}
