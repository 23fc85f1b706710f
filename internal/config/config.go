// Package config handles loading and managing mailsift configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the mailsift configuration. Every field has a default; the
// config file is optional.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Index  IndexConfig  `toml:"index"`
	Search SearchConfig `toml:"search"`

	// HomeDir is computed, not read from the file.
	HomeDir string `toml:"-"`
}

// DataConfig holds storage configuration.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// IndexConfig holds ingestion tunables.
type IndexConfig struct {
	BatchSize       int `toml:"batch_size"`        // rows per commit
	MaxMessageBytes int `toml:"max_message_bytes"` // raw message ceiling; larger rows are skipped
}

// SearchConfig holds query-time tunables.
type SearchConfig struct {
	VocabRows      int     `toml:"vocab_rows"`       // records sampled for the fuzzy vocabulary
	VocabMaxTokens int     `toml:"vocab_max_tokens"` // vocabulary size cap
	Similarity     float64 `toml:"similarity"`       // fuzzy match floor, 0..1
	MaxExpansions  int     `toml:"max_expansions"`   // fuzzy candidates per term
	ResultLimit    int     `toml:"result_limit"`     // default search result cap
}

// DefaultHome returns the default mailsift home directory, respecting
// MAILSIFT_HOME.
func DefaultHome() string {
	if h := os.Getenv("MAILSIFT_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mailsift"
	}
	return filepath.Join(home, ".mailsift")
}

// Load reads configuration from path, or from <home>/config.toml when path
// is empty. homeDir overrides the default home when non-empty. A missing
// file yields defaults.
func Load(path, homeDir string) (*Config, error) {
	if homeDir == "" {
		homeDir = DefaultHome()
	}
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Data: DataConfig{
			DataDir: homeDir,
		},
		Index: IndexConfig{
			BatchSize:       1000,
			MaxMessageBytes: 1_000_000,
		},
		Search: SearchConfig{
			VocabRows:      20000,
			VocabMaxTokens: 80000,
			Similarity:     0.7,
			MaxExpansions:  3,
			ResultLimit:    20,
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Data.DataDir = expandPath(cfg.Data.DataDir)

	return cfg, nil
}

// EnsureHomeDir creates the data directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.Data.DataDir, 0755)
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.DataDir, "mailsift.db")
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
