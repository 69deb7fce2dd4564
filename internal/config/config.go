package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile     = "sanity.toml"
	YAMLConfigFile = "sanity.yaml"
)

const (
	DefaultDataset   = "production"
	DefaultPort      = 22881
	DefaultLogLevel  = "info"
	DefaultAssetsDir = "assets"
)

var (
	ErrMissingProjectID = zerr.New("project id is required")
	ErrMissingDataset   = zerr.New("dataset is required")
	ErrInvalidProjectID = zerr.New("invalid project id")
	ErrInvalidDataset   = zerr.New("invalid dataset name")
)

var (
	projectIDPattern = regexp.MustCompile(`^[a-z0-9]+$`)
	datasetPattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
)

// Config holds the plugin configuration.
type Config struct {
	ProjectID     string       `toml:"project_id" yaml:"project_id"`
	Dataset       string       `toml:"dataset" yaml:"dataset"`
	Token         string       `toml:"token,omitempty" yaml:"token,omitempty"`
	OverlayDrafts bool         `toml:"overlay_drafts,omitempty" yaml:"overlay_drafts,omitempty"`
	WatchMode     bool         `toml:"watch_mode,omitempty" yaml:"watch_mode,omitempty"`
	TypePrefix    string       `toml:"type_prefix,omitempty" yaml:"type_prefix,omitempty"`
	AssetsDir     string       `toml:"assets_dir,omitempty" yaml:"assets_dir,omitempty"`
	Server        ServerConfig `toml:"server" yaml:"server"`
	Log           LogConfig    `toml:"log" yaml:"log"`
}

// ServerConfig defines settings for the HTTP server.
type ServerConfig struct {
	Port int `toml:"port" yaml:"port"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Dataset:   DefaultDataset,
		AssetsDir: DefaultAssetsDir,
		Server:    ServerConfig{Port: DefaultPort},
		Log:       LogConfig{Level: DefaultLogLevel},
	}
}

// DefaultWithProject returns a Config for the given project and dataset.
func DefaultWithProject(projectID, dataset string) *Config {
	cfg := Default()
	cfg.ProjectID = projectID
	if dataset != "" {
		cfg.Dataset = dataset
	}
	return cfg
}

// Load reads configuration from the given directory.
// sanity.toml takes precedence over sanity.yaml.
// Returns default config if neither file exists.
func Load(root string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "parsing config"), "file", ConfigFile)
		}
	case os.IsNotExist(err):
		data, err = os.ReadFile(filepath.Join(root, YAMLConfigFile))
		if err != nil {
			if os.IsNotExist(err) {
				return Default(), nil
			}
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "parsing config"), "file", YAMLConfigFile)
		}
	default:
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in missing values.
func (c *Config) applyDefaults() {
	if c.Dataset == "" {
		c.Dataset = DefaultDataset
	}
	if c.AssetsDir == "" {
		c.AssetsDir = DefaultAssetsDir
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Save writes the configuration as sanity.toml to the given directory.
func (c *Config) Save(root string) error {
	path := filepath.Join(root, ConfigFile)

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the project id and dataset are present and well formed.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return ErrMissingProjectID
	}
	if !projectIDPattern.MatchString(c.ProjectID) {
		return zerr.With(ErrInvalidProjectID, "project_id", c.ProjectID)
	}
	if c.Dataset == "" {
		return ErrMissingDataset
	}
	if !datasetPattern.MatchString(c.Dataset) {
		return zerr.With(ErrInvalidDataset, "dataset", c.Dataset)
	}
	return nil
}

// OverlayMode returns "overlayed" when drafts are overlaid on published documents, "raw" otherwise.
func (c *Config) OverlayMode() string {
	if c.OverlayDrafts {
		return "overlayed"
	}
	return "raw"
}

// ResolveAssetsDir returns the assets directory, resolved against root when relative.
func (c *Config) ResolveAssetsDir(root string) string {
	if filepath.IsAbs(c.AssetsDir) {
		return c.AssetsDir
	}
	return filepath.Join(root, c.AssetsDir)
}
