// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for ivypub.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"ivypub/internal/config"
	"ivypub/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "ivypub",
		Short: "Publish locally built jars into a filesystem Ivy repository",
		Long: TitleStyle.Render("ivypub") + SubtitleStyle.Render(" - publish locally built jars into a filesystem Ivy repository") + `

ivypub installs a locally built jar (and optional sources jar) into a
repository laid out by module coordinates, generating an ivy-<version>.xml
descriptor. Publishing is idempotent: when the destination is already
byte-identical, nothing is written, so downstream incremental builds stay
warm.

` + SubtitleStyle.Render("Examples:") + `
  ivypub publish com.example:foo:1.2.3 build/libs/foo.jar
  ivypub publish com.example:foo:1.2.3 build/libs/foo.jar \
      --sources build/libs/foo-sources.jar --dep org.dep:bar:2.0
  ivypub repo show          Show how consumers should register the repository
  ivypub config show        Show current configuration`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ivypub/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(newRepoCommand())
	rootCmd.AddCommand(newConfigCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig resolves configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		verbose = true
	}
	return cfg, nil
}

// formatErrorForDisplay renders an error for the terminal, expanding
// ActionableError context when present.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}
