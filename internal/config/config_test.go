// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Status != StatusRelease {
		t.Errorf("Status = %q, want %q", cfg.Status, StatusRelease)
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
	if !cfg.Repo.AllowInsecure {
		t.Error("Repo.AllowInsecure should default to true")
	}
	if cfg.RepoRoot == "" {
		t.Error("RepoRoot should be resolved to a default")
	}
	if !strings.Contains(cfg.RepoRoot, ".ivypub") {
		t.Errorf("RepoRoot = %q, want a path under ~/.ivypub", cfg.RepoRoot)
	}
}

func TestLoadCUEConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	cuePath := filepath.Join(dir, "config.cue")
	content := `
repo_root: "/srv/repo"
status:    "integration"
verbose:   true
repo: url: "http://repo.example.com"
`
	if err := os.WriteFile(cuePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RepoRoot != "/srv/repo" {
		t.Errorf("RepoRoot = %q, want /srv/repo", cfg.RepoRoot)
	}
	if cfg.Status != StatusIntegration {
		t.Errorf("Status = %q, want integration", cfg.Status)
	}
	if !cfg.Verbose {
		t.Error("Verbose not picked up from config file")
	}
	if cfg.Repo.URL != "http://repo.example.com" {
		t.Errorf("Repo.URL = %q", cfg.Repo.URL)
	}
}

func TestLoadTOMLConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	tomlPath := filepath.Join(dir, "config.toml")
	content := `
repo_root = "/srv/toml-repo"
status = "milestone"

[repo]
allow_insecure = false
`
	if err := os.WriteFile(tomlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RepoRoot != "/srv/toml-repo" {
		t.Errorf("RepoRoot = %q, want /srv/toml-repo", cfg.RepoRoot)
	}
	if cfg.Status != StatusMilestone {
		t.Errorf("Status = %q, want milestone", cfg.Status)
	}
	if cfg.Repo.AllowInsecure {
		t.Error("Repo.AllowInsecure not picked up from config file")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	dir := useTempConfigDir(t)

	cuePath := filepath.Join(dir, "config.cue")
	if err := os.WriteFile(cuePath, []byte(`status: "bogus"`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a status outside the schema")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	useTempConfigDir(t)

	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.cue"))
	if err == nil {
		t.Error("LoadFrom() with missing file succeeded, want error")
	}
}

func TestLoadFromUnsupportedExtension(t *testing.T) {
	useTempConfigDir(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("repo_root: /x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() accepted an unsupported extension")
	}
}

func TestEnvOverride(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("IVYPUB_STATUS", "integration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Status != StatusIntegration {
		t.Errorf("Status = %q, want integration from environment", cfg.Status)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RepoRoot = "/srv/repo"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}

	cfg.Status = "bogus"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Validate() error = %v, want ErrInvalidStatus", err)
	}
}
