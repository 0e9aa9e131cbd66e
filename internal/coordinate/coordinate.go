// SPDX-License-Identifier: MPL-2.0

// Package coordinate parses group:name:version coordinate strings and
// derives the on-disk repository layout for a module.
//
// The layout mirrors the Maven convention: dots in the group become path
// separators, followed by the module name and version. All derivations
// are pure functions of the module identity and the repository root, so
// republishing the same coordinates always targets the same paths.
package coordinate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformedCoordinates is returned when a coordinate string does not
// split into exactly three non-empty fields.
var ErrMalformedCoordinates = errors.New("malformed coordinates")

type (
	// Module is the parsed identity of a published artifact: group, name
	// and version. Values are immutable once parsed; equality is
	// structural.
	Module struct {
		Group   string
		Name    string
		Version string
	}

	// Location pairs a Module with its resolved version directory under a
	// repository root. Locations are derived on demand, never stored.
	Location struct {
		Module Module
		Dir    string
	}
)

// Parse splits a "group:name:version" coordinate string into a Module.
// No trimming or case normalization is performed; inputs are expected
// pre-validated by the caller.
func Parse(coords string) (Module, error) {
	parts := strings.Split(coords, ":")
	if len(parts) != 3 {
		return Module{}, fmt.Errorf("%w: %q must have the form group:name:version", ErrMalformedCoordinates, coords)
	}
	for _, part := range parts {
		if part == "" {
			return Module{}, fmt.Errorf("%w: %q contains an empty field", ErrMalformedCoordinates, coords)
		}
	}
	return Module{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
}

// ParseAll parses a list of coordinate strings, preserving input order.
func ParseAll(coords []string) ([]Module, error) {
	modules := make([]Module, 0, len(coords))
	for _, c := range coords {
		m, err := Parse(c)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// Locate parses a coordinate string and resolves its version directory
// under root.
func Locate(root, coords string) (Location, error) {
	m, err := Parse(coords)
	if err != nil {
		return Location{}, err
	}
	return Location{Module: m, Dir: m.Dir(root)}, nil
}

// String returns the canonical group:name:version form.
func (m Module) String() string {
	return m.Group + ":" + m.Name + ":" + m.Version
}

// Dir returns the version directory for the module under root: the group
// with dots replaced by path separators, then the name, then the version.
func (m Module) Dir(root string) string {
	groupPath := strings.ReplaceAll(m.Group, ".", string(filepath.Separator))
	return filepath.Join(root, groupPath, m.Name, m.Version)
}

// BinaryFileName returns the destination file name of the binary artifact.
func (m Module) BinaryFileName() string {
	return m.Name + "-" + m.Version + ".jar"
}

// SourcesFileName returns the destination file name of the sources artifact.
func (m Module) SourcesFileName() string {
	return m.Name + "-" + m.Version + "-sources.jar"
}

// DescriptorFileName returns the destination file name of the descriptor.
func (m Module) DescriptorFileName() string {
	return "ivy-" + m.Version + ".xml"
}

// BinaryPath returns the absolute destination path of the binary artifact.
func (l Location) BinaryPath() string {
	return filepath.Join(l.Dir, l.Module.BinaryFileName())
}

// SourcesPath returns the absolute destination path of the sources artifact.
func (l Location) SourcesPath() string {
	return filepath.Join(l.Dir, l.Module.SourcesFileName())
}

// DescriptorPath returns the absolute destination path of the descriptor.
func (l Location) DescriptorPath() string {
	return filepath.Join(l.Dir, l.Module.DescriptorFileName())
}
