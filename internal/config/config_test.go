package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `vault:
  root: "` + tmpDir + `"

apply:
  backup: true
  dry_run: true

ui:
  quiet: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Vault.Root != tmpDir {
		t.Errorf("Vault.Root = %q, want %q", cfg.Vault.Root, tmpDir)
	}
	if !cfg.Apply.Backup {
		t.Error("Apply.Backup = false, want true")
	}
	if !cfg.Apply.DryRun {
		t.Error("Apply.DryRun = false, want true")
	}
	if !cfg.UI.Quiet {
		t.Error("UI.Quiet = false, want true")
	}
}

func TestLoadResolvesRelativeRoot(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `vault:
  root: "notes"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !filepath.IsAbs(cfg.Vault.Root) {
		t.Errorf("Vault.Root = %q, want absolute path", cfg.Vault.Root)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded for missing file, want error")
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if !filepath.IsAbs(cfg.Vault.Root) {
		t.Errorf("Vault.Root = %q, want absolute path", cfg.Vault.Root)
	}
	if !cfg.Apply.Backup {
		t.Error("Apply.Backup = false, want true by default")
	}
	if cfg.Apply.DryRun {
		t.Error("Apply.DryRun = true, want false by default")
	}
}
