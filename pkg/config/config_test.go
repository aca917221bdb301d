package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 32
	cfg.Catalog.DSN = "postgres://localhost/shop"
	cfg.Catalog.SearchPath = []string{"public", "audit"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.MaxLimit != 32 {
		t.Errorf("MaxLimit = %d, want 32", loaded.Server.MaxLimit)
	}
	if loaded.Catalog.DSN != "postgres://localhost/shop" {
		t.Errorf("DSN = %q", loaded.Catalog.DSN)
	}
	if len(loaded.Catalog.SearchPath) != 2 || loaded.Catalog.SearchPath[1] != "audit" {
		t.Errorf("SearchPath = %v", loaded.Catalog.SearchPath)
	}
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.MaxLimit != DefaultConfig().Server.MaxLimit {
		t.Errorf("MaxLimit = %d", cfg.Server.MaxLimit)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not created: %v", err)
	}
}

func TestGetActiveConfigPath(t *testing.T) {
	// a relative path comes back absolute
	got := GetActiveConfigPath("config.toml")
	if !filepath.IsAbs(got) {
		t.Errorf("GetActiveConfigPath(relative) = %q, want absolute", got)
	}

	abs := filepath.Join(t.TempDir(), "config.toml")
	if got := GetActiveConfigPath(abs); got != abs {
		t.Errorf("GetActiveConfigPath(%q) = %q", abs, got)
	}

	// empty resolves to the default location (or "unknown" when homeless)
	if got := GetActiveConfigPath(""); got == "" {
		t.Error("GetActiveConfigPath(\"\") returned empty string")
	}
}

// a half-broken file keeps its valid sections
func TestPartialParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
max_limit = 16

[catalog]
dsn = "postgres://localhost/shop"
search_path = "oops not a list"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 16 {
		t.Errorf("MaxLimit = %d, want 16 from the valid section", cfg.Server.MaxLimit)
	}
	// broken field falls back to defaults
	if len(cfg.Catalog.SearchPath) != 1 || cfg.Catalog.SearchPath[0] != "public" {
		t.Errorf("SearchPath = %v, want default", cfg.Catalog.SearchPath)
	}
}
