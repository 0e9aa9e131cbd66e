// SPDX-License-Identifier: MPL-2.0

// Package publisher installs locally built artifacts into a
// filesystem-backed repository laid out by module coordinates.
//
// A publish is idempotent: the binary artifact is normalized, a
// descriptor is rendered, and the destination is compared byte for byte
// against what would be written. When nothing differs the publish is a
// no-op, which keeps downstream incremental build state intact. Any
// single stale artifact forces a full republish of all three destination
// files.
//
// The publisher does not coordinate concurrent writers. Callers must
// serialize publishes to the same version directory; publishes to
// distinct version directories are independent.
package publisher

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"ivypub/internal/coordinate"
	"ivypub/internal/descriptor"
	"ivypub/internal/freshness"
	"ivypub/internal/jarfilter"
)

// Request carries everything one publish call needs. BinaryPath must
// point at an existing jar; SourcesPath is optional and empty means "no
// sources artifact".
type Request struct {
	RepoRoot     string
	Coordinates  string
	Dependencies []string
	BinaryPath   string
	SourcesPath  string
	Status       string
}

// Publisher performs publish calls. The zero value is not usable; use New.
type Publisher struct {
	logger *log.Logger
}

// New creates a Publisher. A nil logger falls back to a stderr logger
// with the "publisher" prefix.
func New(logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "publisher",
		})
	}
	return &Publisher{logger: logger}
}

// Publish installs the request's artifacts into the repository and
// reports whether anything was written: false means the destination was
// already byte-identical to what a publish would produce.
//
// Side effects are confined to the module's version directory, plus the
// in-place normalization of the candidate binary. Errors propagate to
// the caller; re-invoking after a failure is always safe.
func (p *Publisher) Publish(req Request) (changed bool, err error) {
	loc, err := coordinate.Locate(req.RepoRoot, req.Coordinates)
	if err != nil {
		return false, err
	}
	deps, err := coordinate.ParseAll(req.Dependencies)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(loc.Dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create version directory %s: %w", loc.Dir, err)
	}

	// Normalization must run before the freshness check: the check
	// compares the destination against the normalized binary, not the
	// original.
	if err := jarfilter.Normalize(req.BinaryPath); err != nil {
		if errors.Is(err, jarfilter.ErrReplaceFailed) {
			p.logger.Warn("filtered archive could not replace the original; temp copy kept for recovery",
				"archive", req.BinaryPath)
		}
		return false, fmt.Errorf("failed to normalize %s: %w", req.BinaryPath, err)
	}

	desc, err := descriptor.Generate(loc.Module, deps, req.Status)
	if err != nil {
		return false, err
	}

	report, err := freshness.Check(freshness.Destination{
		BinaryPath:     loc.BinaryPath(),
		SourcesPath:    loc.SourcesPath(),
		DescriptorPath: loc.DescriptorPath(),
	}, freshness.Candidate{
		BinaryPath:  req.BinaryPath,
		SourcesPath: req.SourcesPath,
		Descriptor:  desc,
	})
	if err != nil {
		return false, err
	}

	if report.Fresh() {
		p.logger.Debug("destination up to date, skipping publish", "module", loc.Module)
		return false, nil
	}

	p.logger.Debug("destination stale, publishing",
		"module", loc.Module,
		"binaryFresh", report.Binary,
		"sourcesFresh", report.Sources,
		"descriptorFresh", report.Descriptor)

	if req.SourcesPath == "" {
		// Keep the destination consistent with "no sources published".
		if err := removeIfExists(loc.SourcesPath()); err != nil {
			return false, fmt.Errorf("failed to remove stale sources artifact: %w", err)
		}
	} else {
		if err := copyFile(req.SourcesPath, loc.SourcesPath()); err != nil {
			return false, fmt.Errorf("failed to copy sources artifact: %w", err)
		}
	}

	if err := copyFile(req.BinaryPath, loc.BinaryPath()); err != nil {
		return false, fmt.Errorf("failed to copy binary artifact: %w", err)
	}
	if err := os.WriteFile(loc.DescriptorPath(), []byte(desc), 0o644); err != nil {
		return false, fmt.Errorf("failed to write descriptor: %w", err)
	}

	p.logger.Info("published", "module", loc.Module, "dir", loc.Dir)
	return true, nil
}

// copyFile copies a single file, preserving the source file mode.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
