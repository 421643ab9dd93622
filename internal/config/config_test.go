package config

import (
	"os"
	"testing"
)

func TestGetPaths(t *testing.T) {
	paths := GetPaths()

	if paths.ConfigDir == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if paths.DataDir == "" {
		t.Fatal("DataDir should not be empty")
	}
	if paths.ConfigFile == "" {
		t.Fatal("ConfigFile should not be empty")
	}
	if paths.DBFile == "" {
		t.Fatal("DBFile should not be empty")
	}
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/habitflow" {
		t.Fatalf("expected /tmp/testxdg/config/habitflow, got %s", paths.ConfigDir)
	}
	if paths.DataDir != "/tmp/testxdg/data/habitflow" {
		t.Fatalf("expected /tmp/testxdg/data/habitflow, got %s", paths.DataDir)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.AI.Provider != "gemini" {
		t.Fatalf("expected provider 'gemini', got %q", cfg.AI.Provider)
	}
	if cfg.AI.Model != DefaultModel {
		t.Fatalf("expected model %q, got %q", DefaultModel, cfg.AI.Model)
	}
	if !cfg.UI.RenderMarkdown() {
		t.Fatal("markdown rendering should default to on")
	}
}

func TestRenderMarkdownNilDefaultsTrue(t *testing.T) {
	var u UIConfig
	if !u.RenderMarkdown() {
		t.Fatal("nil Markdown should mean enabled")
	}
	u.Markdown = BoolPtr(false)
	if u.RenderMarkdown() {
		t.Fatal("explicit false should disable rendering")
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.CacheDir, paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}
