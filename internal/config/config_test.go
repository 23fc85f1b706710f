package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load("", home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HomeDir != home {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, home)
	}
	if cfg.Data.DataDir != home {
		t.Errorf("DataDir = %q, want %q", cfg.Data.DataDir, home)
	}
	if cfg.Index.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want 1000", cfg.Index.BatchSize)
	}
	if cfg.Index.MaxMessageBytes != 1_000_000 {
		t.Errorf("MaxMessageBytes = %d, want 1000000", cfg.Index.MaxMessageBytes)
	}
	if cfg.Search.VocabRows != 20000 || cfg.Search.VocabMaxTokens != 80000 {
		t.Errorf("vocab bounds = %d/%d, want 20000/80000",
			cfg.Search.VocabRows, cfg.Search.VocabMaxTokens)
	}
	if cfg.Search.Similarity != 0.7 || cfg.Search.MaxExpansions != 3 {
		t.Errorf("fuzzy tunables = %v/%d, want 0.7/3",
			cfg.Search.Similarity, cfg.Search.MaxExpansions)
	}
	if cfg.Search.ResultLimit != 20 {
		t.Errorf("ResultLimit = %d, want 20", cfg.Search.ResultLimit)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	content := `
[data]
data_dir = "` + filepath.Join(home, "data") + `"

[index]
batch_size = 50

[search]
similarity = 0.8
result_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("", home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Index.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.Index.BatchSize)
	}
	if cfg.Search.Similarity != 0.8 {
		t.Errorf("Similarity = %v, want 0.8", cfg.Search.Similarity)
	}
	if cfg.Search.ResultLimit != 5 {
		t.Errorf("ResultLimit = %d, want 5", cfg.Search.ResultLimit)
	}
	// Untouched sections keep their defaults.
	if cfg.Index.MaxMessageBytes != 1_000_000 {
		t.Errorf("MaxMessageBytes = %d, want default", cfg.Index.MaxMessageBytes)
	}
	if cfg.Search.MaxExpansions != 3 {
		t.Errorf("MaxExpansions = %d, want default", cfg.Search.MaxExpansions)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.toml")
	if err := os.WriteFile(path, []byte("[index]\nbatch_size = 7\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Index.BatchSize != 7 {
		t.Errorf("BatchSize = %d, want 7", cfg.Index.BatchSize)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load("", home); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestDefaultHome_EnvOverride(t *testing.T) {
	t.Setenv("MAILSIFT_HOME", "/custom/mailsift")
	if got := DefaultHome(); got != "/custom/mailsift" {
		t.Errorf("DefaultHome = %q, want env override", got)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{Data: DataConfig{DataDir: "/tmp/ms"}}
	if got, want := cfg.DatabasePath(), filepath.Join("/tmp/ms", "mailsift.db"); got != want {
		t.Errorf("DatabasePath = %q, want %q", got, want)
	}
}
