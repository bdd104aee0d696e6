package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/sustainlab/materiality/internal/export"
	"github.com/sustainlab/materiality/internal/logging"
)

// Config is the operational envelope of the program. It never carries
// workflow inputs; those are always entered interactively.
type Config struct {
	// LogFile is where structured logs go. Empty means the default path.
	LogFile string `toml:"log_file"`

	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`

	// ExportDir is where the directory picker starts. Empty means the
	// working directory.
	ExportDir string `toml:"export_dir"`

	// Formats lists the export formats written on save.
	Formats []string `toml:"formats"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Formats:  []string{"csv"},
	}
}

// Validate checks the log level and export formats.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return goerr.Wrap(err, "invalid log_level")
	}
	if len(c.Formats) == 0 {
		return goerr.New("at least one export format is required")
	}
	if _, err := export.Writers(c.Formats); err != nil {
		return goerr.Wrap(err, "invalid formats", goerr.V("formats", c.Formats))
	}
	if c.ExportDir != "" {
		info, err := os.Stat(c.ExportDir)
		if err != nil {
			return goerr.Wrap(err, "export_dir not accessible", goerr.V("path", c.ExportDir))
		}
		if !info.IsDir() {
			return goerr.New("export_dir is not a directory", goerr.V("path", c.ExportDir))
		}
	}
	return nil
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}
	return cfg, nil
}

// Overrides holds values given on the command line. Empty fields are unset.
type Overrides struct {
	ConfigPath string
	LogFile    string
	LogLevel   string
}

// Resolve builds the effective configuration: flags first, then
// MATERIALITY_CONFIG, then defaults. The log file falls back to
// logging.DefaultPath when nothing sets it.
func Resolve(o Overrides) (*Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("MATERIALITY_CONFIG")
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if cfg.LogFile == "" {
		p, err := logging.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.LogFile = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StartDir returns the directory the export picker opens in.
func (c *Config) StartDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
