// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ivypub/internal/repo"
)

// newRepoCommand creates the `ivypub repo` command tree.
func newRepoCommand() *cobra.Command {
	repoCmd := &cobra.Command{
		Use:   "repo",
		Short: "Inspect the repository registration surface",
		Long: `Inspect how consuming builds should register the publish repository.

The publisher only writes the filesystem layout; resolution is done by
the consuming build against these resolver settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	repoCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show resolver settings for the configured repository",
		RunE:  runRepoShow,
	})

	return repoCmd
}

func runRepoShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	url := cfg.Repo.URL
	if url == "" {
		url = "file://" + cfg.RepoRoot
	}

	var opts []repo.Option
	if !cfg.Repo.AllowInsecure {
		opts = append(opts, repo.WithSecureProtocolOnly())
	}
	r := repo.Register(url, opts...)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Repository registration"))
	fmt.Fprintln(out, SubtitleStyle.Render("url:                     ")+highlightStyle.Render(r.URL))
	fmt.Fprintln(out, SubtitleStyle.Render("artifact pattern:        ")+r.ArtifactPattern)
	fmt.Fprintln(out, SubtitleStyle.Render("ivy pattern:             ")+r.IvyPattern)
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("m2 compatible:           "), r.M2Compatible)
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("use descriptors:         "), r.UseDescriptors)
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("allow insecure protocol: "), r.AllowInsecureProtocol)
	fmt.Fprintf(out, "%s%t\n", SubtitleStyle.Render("dynamic revisions:       "), r.ResolveDynamicRevisions)
	return nil
}
