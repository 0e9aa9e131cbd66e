// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// StatusRelease marks published modules as released. This is the
	// default and what downstream resolution normally expects.
	StatusRelease Status = "release"
	// StatusIntegration marks modules from ongoing development builds.
	StatusIntegration Status = "integration"
	// StatusMilestone marks modules from milestone builds.
	StatusMilestone Status = "milestone"
)

// ErrInvalidStatus is returned when a Status value is not recognized.
var ErrInvalidStatus = errors.New("invalid status")

type (
	// Status is the descriptor status attribute written on publish.
	Status string

	// Config holds the resolved ivypub configuration.
	Config struct {
		// RepoRoot is the filesystem root of the publish repository.
		RepoRoot string `mapstructure:"repo_root"`

		// Status is the descriptor status attribute.
		Status Status `mapstructure:"status"`

		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`

		// Repo configures the registration surface for consumers.
		Repo RepoConfig `mapstructure:"repo"`
	}

	// RepoConfig describes how consuming builds should register the
	// repository.
	RepoConfig struct {
		// URL overrides the registration URL. Empty means "derive a
		// file:// URL from RepoRoot".
		URL string `mapstructure:"url"`

		// AllowInsecure permits file:// and http:// registration URLs.
		AllowInsecure bool `mapstructure:"allow_insecure"`
	}
)

// DefaultConfig returns the built-in defaults. RepoRoot is left empty and
// resolved against the user's home directory at load time.
func DefaultConfig() Config {
	return Config{
		Status: StatusRelease,
		Repo: RepoConfig{
			AllowInsecure: true,
		},
	}
}

// Validate checks constraints the CUE schema cannot enforce once values
// have passed through environment overrides.
func (c *Config) Validate() error {
	switch c.Status {
	case StatusRelease, StatusIntegration, StatusMilestone:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected release, integration or milestone)", ErrInvalidStatus, c.Status)
	}
}
