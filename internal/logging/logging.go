package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
)

// New creates a timestamped logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name; an empty name means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, goerr.Wrap(err, "invalid log level", goerr.V("level", s))
	}
	return level, nil
}

// OpenFile opens (or creates) the log file at path for appending and
// returns a logger writing to it. The caller closes the returned file.
func OpenFile(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, goerr.Wrap(err, "failed to create log directory", goerr.V("path", path))
	}
	// #nosec G304 - path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", path))
	}
	return New(f, level), f, nil
}

// DefaultPath resolves the log file path in priority order:
// 1. MATERIALITY_LOG environment variable
// 2. $XDG_STATE_HOME/materiality/materiality.log
// 3. ~/.local/state/materiality/materiality.log
func DefaultPath() (string, error) {
	if p := os.Getenv("MATERIALITY_LOG"); p != "" {
		return p, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", goerr.Wrap(err, "failed to resolve home dir")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "materiality", "materiality.log"), nil
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
