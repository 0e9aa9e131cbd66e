// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ivypub/internal/config"
)

// newConfigCommand creates the `ivypub config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ivypub configuration",
		Long: `Manage ivypub configuration.

Configuration is stored in:
  - Linux: ~/.config/ivypub/config.cue (or config.toml)
  - macOS: ~/Library/Application Support/ivypub/config.cue
  - Windows: %APPDATA%\ivypub\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("ivypub configuration"))
	fmt.Fprintln(out, SubtitleStyle.Render("repo_root:           ")+highlightStyle.Render(cfg.RepoRoot))
	fmt.Fprintln(out, SubtitleStyle.Render("status:              ")+string(cfg.Status))
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("verbose:             "), cfg.Verbose)
	fmt.Fprintln(out, SubtitleStyle.Render("repo.url:            ")+cfg.Repo.URL)
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("repo.allow_insecure: "), cfg.Repo.AllowInsecure)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+".cue"))
	return nil
}
