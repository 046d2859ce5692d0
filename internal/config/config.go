package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Vault struct {
		Root string `yaml:"root"`
	} `yaml:"vault"`

	Apply struct {
		Backup bool `yaml:"backup"`  // write <file>.orig before the first modification
		DryRun bool `yaml:"dry_run"` // compute results, write nothing
	} `yaml:"apply"`

	UI struct {
		Quiet bool `yaml:"quiet"`
	} `yaml:"ui"`
}

// Load reads and parses the YAML config at path, then applies defaults. The
// vault root is resolved to an absolute path so the rest of the program never
// depends on the working directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Vault.Root == "" {
		cfg.Vault.Root = "."
	}
	absRoot, err := filepath.Abs(cfg.Vault.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}
	cfg.Vault.Root = absRoot

	return &cfg, nil
}

// Default returns the configuration used when no config file is given: the
// current directory as the vault, backups on.
func Default() (*Config, error) {
	var cfg Config
	absRoot, err := filepath.Abs(".")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}
	cfg.Vault.Root = absRoot
	cfg.Apply.Backup = true
	return &cfg, nil
}
