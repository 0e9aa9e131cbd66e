// SPDX-License-Identifier: MPL-2.0

// Package config loads ivypub configuration.
//
// Configuration lives in config.cue (validated against an embedded CUE
// schema) or config.toml, looked up in the platform config directory and
// then the current directory. Values merge into viper on top of built-in
// defaults, with IVYPUB_* environment variables taking precedence.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"ivypub/internal/issue"
)

const (
	// AppName is the application name, used for config directory layout.
	AppName = "ivypub"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the ivypub configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultRepoRoot returns the repository root used when none is
// configured: ~/.ivypub/repository.
func DefaultRepoRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName, "repository"), nil
}

// Load resolves configuration from the default locations.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom resolves configuration, preferring the explicit file at path
// when non-empty. With an empty path, config.cue and then config.toml are
// tried in the platform config directory and the current directory.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("repo_root", defaults.RepoRoot)
	v.SetDefault("status", string(defaults.Status))
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("repo.url", defaults.Repo.URL)
	v.SetDefault("repo.allow_insecure", defaults.Repo.AllowInsecure)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !fileExists(path) {
			return nil, issue.NewContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'ivypub config path' to see the default location").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := mergeConfigFile(v, path); err != nil {
			return nil, issue.NewContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check the file against 'ivypub config show' output").
				Wrap(err).
				BuildError()
		}
	} else if found := findConfigFile(); found != "" {
		if err := mergeConfigFile(v, found); err != nil {
			return nil, issue.NewContext().
				WithOperation("load configuration").
				WithResource(found).
				WithSuggestion("Check the file against 'ivypub config show' output").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if cfg.RepoRoot == "" {
		root, err := DefaultRepoRoot()
		if err != nil {
			return nil, err
		}
		cfg.RepoRoot = root
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfigFile returns the first config file present in the lookup
// locations, or "" when none exists.
func findConfigFile() string {
	var candidates []string

	if cfgDir, err := ConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(cfgDir, ConfigFileName+".cue"),
			filepath.Join(cfgDir, ConfigFileName+".toml"),
		)
	}
	candidates = append(candidates,
		ConfigFileName+".cue",
		ConfigFileName+".toml",
	)

	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}
	return ""
}

// mergeConfigFile dispatches on the file extension and merges the file's
// contents into viper.
func mergeConfigFile(v *viper.Viper, path string) error {
	switch filepath.Ext(path) {
	case ".cue":
		return mergeCUE(v, path)
	case ".toml":
		return mergeTOML(v, path)
	default:
		return fmt.Errorf("unsupported config file extension: %s", path)
	}
}

// mergeCUE parses a CUE file, validates it against the embedded #Config
// schema, and merges its contents into viper.
func mergeCUE(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config %s does not match schema: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// mergeTOML decodes a TOML file and merges its contents into viper.
func mergeTOML(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("invalid TOML in %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
