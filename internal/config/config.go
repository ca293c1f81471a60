// Package config loads owloop settings from config.yaml with viper.
//
// The file lives in the configuration directory resolved by internal/paths
// and is created with defaults on first run. Every key can be overridden by
// an OWLOOP_ environment variable, e.g. OWLOOP_LOG_LEVEL=debug.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/owloop/internal/paths"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "OWLOOP"

	keyLogLevel   = "log_level"
	keyLogFormat  = "log_format"
	keyDataDir    = "data_dir"
	keyOntologies = "ontologies"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# owloop configuration

# Log level: debug, info, warn or error.
log_level: info

# Log format: text or json.
log_format: text

# Directory holding the ontology stores. Each ontology without its own
# data_dir gets a subdirectory named after it.
# data_dir:

# Ontology references opened at startup.
ontologies:
  - name: default
    backend: sqlite
    buffered: false
    sqlite:
      sync_strategy: immediate
`

// Config is the content of config.yaml after defaults and environment
// overrides are applied.
type Config struct {
	LogLevel   string         `mapstructure:"log_level"`
	LogFormat  string         `mapstructure:"log_format"`
	DataDir    string         `mapstructure:"data_dir"`
	Ontologies []types.Config `mapstructure:"ontologies"`
}

// Errors returned by Load.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

// Load reads config.yaml from configDir, creating the directory and a
// default file on first run. DataDir is resolved to an absolute path and
// every ontology without a data_dir is placed under it.
func Load(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyDataDir, "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: %q", ErrLogFormatUnknown, c.LogFormat)
	}

	dataDir, err := paths.ResolveDataDir("", c.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	c.DataDir = dataDir

	seen := make(map[string]bool, len(c.Ontologies))
	for i := range c.Ontologies {
		o := &c.Ontologies[i]
		if o.Name == "" {
			return fmt.Errorf("ontology %d: %w", i, types.ErrInvalidName)
		}
		if seen[o.Name] {
			return fmt.Errorf("%w: %s", types.ErrDuplicateName, o.Name)
		}
		seen[o.Name] = true
		if o.Backend == "" {
			o.Backend = types.BackendSQLite
		}
		if o.DataDir == "" && !o.Badger.InMemory {
			o.DataDir = paths.OntologyDir(dataDir, o.Name)
		}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("ontology %s: %w", o.Name, err)
		}
	}
	return nil
}

// Ontology returns the configuration of the named ontology.
func (c *Config) Ontology(name string) (types.Config, error) {
	for _, o := range c.Ontologies {
		if o.Name == name {
			return o, nil
		}
	}
	return types.Config{}, fmt.Errorf("%w: ontology %s", types.ErrNotFound, name)
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: %q", ErrLogLevelUnknown, c.LogLevel)
	}
	return l, nil
}

// Logger builds a slog.Logger writing to os.Stderr at the configured level
// and format.
func (c *Config) Logger() *slog.Logger {
	level, _ := c.level()
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ensureDefaultConfigFile writes the default config.yaml unless one exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
