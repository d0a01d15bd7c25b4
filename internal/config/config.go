package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dirserve/internal/util"
)

// RootEnv overrides [Config.Root] when set to a non-blank value.
const RootEnv = "DIRSERVE_ROOT"

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultListenAddr      = "0.0.0.0:3000"
	DefaultRoot            = "."
	DefaultLogLvl          = util.InfoLevel
	DefaultIndexFile       = "index.html"
	DefaultNotFoundFile    = "404.html"
	DefaultStopQuery       = "stop"
	DefaultShutdownTimeout = 5
)

// Verbosity levels accepted by [ConfigOverride.LogLvl], from quietest to loudest.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Config contains runtime configuration values for the directory server.
type Config struct {
	ListenAddr      string        // Address the HTTP listener binds to (Default 0.0.0.0:3000)
	Root            string        // Directory served as the tree root (Default .)
	LogLvl          util.LogLevel // Internal log level (Default info)
	IndexFile       string        // Target name used when a path ends in a slash (Default index.html)
	NotFoundFile    string        // Custom not-found page looked up through the ancestors (Default 404.html)
	StopQuery       string        // Raw query that stops the server on a top-level load (Default stop)
	ShutdownTimeout int           // Seconds allowed for graceful shutdown (Default 5)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a verbosity between 1 (error) and 5 (trace), clamped.
type ConfigOverride struct {
	ListenAddr      *string `yaml:"listen_addr,omitempty" json:"listen_addr,omitempty"`
	Root            *string `yaml:"root,omitempty" json:"root,omitempty"`
	LogLvl          *int    `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	IndexFile       *string `yaml:"index_file,omitempty" json:"index_file,omitempty"`
	NotFoundFile    *string `yaml:"not_found_file,omitempty" json:"not_found_file,omitempty"`
	StopQuery       *string `yaml:"stop_query,omitempty" json:"stop_query,omitempty"`
	ShutdownTimeout *int    `yaml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr:      DefaultListenAddr,
		Root:            DefaultRoot,
		LogLvl:          DefaultLogLvl,
		IndexFile:       DefaultIndexFile,
		NotFoundFile:    DefaultNotFoundFile,
		StopQuery:       DefaultStopQuery,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// NewConfig returns the defaults with override applied. A nil override
// yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
func (c *Config) Merge(override *ConfigOverride) {
	if override.ListenAddr != nil {
		c.ListenAddr = *override.ListenAddr
	}
	if override.Root != nil {
		c.Root = *override.Root
	}
	if override.LogLvl != nil {
		c.LogLvl = VerbosityToLogLevel(*override.LogLvl)
	}
	if override.IndexFile != nil {
		c.IndexFile = *override.IndexFile
	}
	if override.NotFoundFile != nil {
		c.NotFoundFile = *override.NotFoundFile
	}
	if override.StopQuery != nil {
		c.StopQuery = *override.StopQuery
	}
	if override.ShutdownTimeout != nil {
		c.ShutdownTimeout = *override.ShutdownTimeout
	}
}

// ApplyEnv applies environment overrides, currently only [RootEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if root, ok := lookup(RootEnv); ok && strings.TrimSpace(root) != "" {
		c.Root = root
	}
}

// VerbosityToLogLevel maps a CLI verbosity (1 error .. 5 trace) to a
// [util.LogLevel], clamping out of range values.
func VerbosityToLogLevel(verbose int) util.LogLevel {
	if verbose < ErrorVerbose {
		verbose = ErrorVerbose
	}
	if verbose > TraceVerbose {
		verbose = TraceVerbose
	}
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
