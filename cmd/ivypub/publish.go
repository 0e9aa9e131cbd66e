// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ivypub/internal/coordinate"
	"ivypub/internal/issue"
	"ivypub/internal/publisher"
)

var (
	// publishSources is the optional sources jar path
	publishSources string
	// publishDeps are dependency coordinates for the descriptor
	publishDeps []string
	// publishRepoRoot overrides the configured repository root
	publishRepoRoot string
	// publishStatus overrides the configured descriptor status
	publishStatus string
)

// publishCmd installs a jar into the repository.
var publishCmd = &cobra.Command{
	Use:   "publish <group:name:version> <binary-jar>",
	Short: "Publish a jar into the repository",
	Long: `Publish a locally built jar into the filesystem repository.

The binary jar is normalized first: entries under META-INF/ are stripped
so signing metadata from one build does not make byte-identical code look
changed. The destination is then compared byte for byte against what
would be written; when everything already matches, nothing is touched.

Examples:
  ivypub publish com.example:foo:1.2.3 build/libs/foo.jar
  ivypub publish com.example:foo:1.2.3 build/libs/foo.jar \
      --sources build/libs/foo-sources.jar \
      --dep org.dep:bar:2.0 --dep org.other:baz:0.4`,
	Args: cobra.ExactArgs(2),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishSources, "sources", "", "sources jar to publish alongside the binary")
	publishCmd.Flags().StringArrayVar(&publishDeps, "dep", nil, "dependency coordinates (group:name:version), repeatable")
	publishCmd.Flags().StringVar(&publishRepoRoot, "repo-root", "", "repository root (overrides configuration)")
	publishCmd.Flags().StringVar(&publishStatus, "status", "", "descriptor status attribute (overrides configuration)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	coords, binary := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	repoRoot := cfg.RepoRoot
	if publishRepoRoot != "" {
		repoRoot = publishRepoRoot
	}
	status := string(cfg.Status)
	if publishStatus != "" {
		status = publishStatus
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "publisher",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	changed, err := publisher.New(logger).Publish(publisher.Request{
		RepoRoot:     repoRoot,
		Coordinates:  coords,
		Dependencies: publishDeps,
		BinaryPath:   binary,
		SourcesPath:  publishSources,
		Status:       status,
	})
	if err != nil {
		wrapped := issue.NewContext().
			WithOperation("publish artifact").
			WithResource(coords).
			WithSuggestion("Check that the binary jar path exists and is a valid archive").
			WithSuggestion("Verify coordinates have the form group:name:version").
			Wrap(err).
			Build()
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+wrapped.Format(verbose))
		return &ExitError{Code: 1, Err: wrapped}
	}

	loc, _ := coordinate.Locate(repoRoot, coords)
	dest := highlightStyle.Render(loc.Dir)
	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ published ")+highlightStyle.Render(coords)+SubtitleStyle.Render(" → ")+dest)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("up to date ")+highlightStyle.Render(coords))
	}
	return nil
}
