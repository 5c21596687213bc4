package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/gmockgen/internal/errs"
)

// FileNames are the project config files searched for, in priority order
var FileNames = []string{"gmockgen.json", "gmockgen.yaml", "gmockgen.yml", "gmockgen.toml"}

// Config represents the gmockgen project configuration file
type Config struct {
	Author string      `json:"author" yaml:"author" toml:"author"`
	Year   int         `json:"year" yaml:"year" toml:"year"`
	Schema string      `json:"schema" yaml:"schema" toml:"schema"`
	Output string      `json:"output" yaml:"output" toml:"output"`
	Header bool        `json:"header" yaml:"header" toml:"header"`
	Mock   bool        `json:"mock" yaml:"mock" toml:"mock"`
	Watch  WatchConfig `json:"watch" yaml:"watch" toml:"watch"`
}

// WatchConfig contains the file patterns the watch command reacts to
type WatchConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns" toml:"patterns"`
	Exclude  []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path, or searches the working directory and its
// parents when path is empty. A missing config file is not an error when
// searching: the defaults are returned with the working directory as root.
func Load(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(path), nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errs.Wrap(err, "failed to get current directory")
	}

	cfg, root, err := loadConfigFromDir(dir)
	if errs.Is(err, os.ErrNotExist) {
		return Default(), dir, nil
	}
	return cfg, root, err
}

// LoadConfigFromPath loads a configuration file, choosing the decoder from its extension
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read config file")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, errs.Wrapf(err, "failed to parse config file %s", path)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Author == "" {
		c.Author = "gmockgen"
	}
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
	if c.Output == "" {
		c.Output = "./generated"
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.json", "*.yaml", "*.yml"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{"*.tmp", ".git"}
	}
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				cfg, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return cfg, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, "", errs.Wrapf(os.ErrNotExist, "no gmockgen config found in %s or any parent directory", startDir)
}
