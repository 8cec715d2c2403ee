// Package config holds the CLI's on-disk configuration, read from
// ~/.haiku/config.yaml when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type LexiconConfig struct {
	DBPath   string `yaml:"db_path"`
	DictPath string `yaml:"dict_path"`
}

type GenerateConfig struct {
	Pattern         []int    `yaml:"pattern"`
	MaxPoems        int      `yaml:"max_poems"`
	Workers         int      `yaml:"workers"`
	Timeout         string   `yaml:"timeout"`
	Heuristic       bool     `yaml:"heuristic"`
	AllowDuplicates bool     `yaml:"allow_duplicates"`
	ExcludedWords   []string `yaml:"excluded_words"`
}

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Generate GenerateConfig `yaml:"generate"`
}

func haikuDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".haiku")
}

// DefaultPath is where Load looks when the user gives no --config flag.
func DefaultPath() string {
	return filepath.Join(haikuDir(), "config.yaml")
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Lexicon: LexiconConfig{
			DBPath: filepath.Join(haikuDir(), "lexicon.db"),
		},
		Generate: GenerateConfig{
			Pattern:  []int{5, 7, 5},
			MaxPoems: 10,
			Workers:  1,
			Timeout:  "30s",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults serve.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// GenerateTimeout parses the generation timeout. YAML has no duration type,
// so it is stored as a string like "30s".
func (c *Config) GenerateTimeout() (time.Duration, error) {
	if c.Generate.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Generate.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse generate timeout: %w", err)
	}
	return timeout, nil
}

func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(haikuDir(), 0700)
}
