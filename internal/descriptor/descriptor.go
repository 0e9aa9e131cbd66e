// SPDX-License-Identifier: MPL-2.0

// Package descriptor renders Ivy 2.0 module descriptors.
//
// Output is deterministic: no timestamps, no randomness, and a fixed
// attribute order, so identical input always yields byte-identical XML.
// The byte-level freshness check in the publisher depends on this.
package descriptor

import (
	"encoding/xml"
	"fmt"
	"strings"

	"ivypub/internal/coordinate"
)

const (
	// SchemaLocation is the public Ivy 2.0 schema URL declared on the
	// descriptor root element.
	SchemaLocation = "http://ant.apache.org/ivy/schemas/ivy.xsd"

	// FormatVersion is the Ivy descriptor format version.
	FormatVersion = "2.0"

	// DefaultStatus is the status attribute written when the caller does
	// not override it.
	DefaultStatus = "release"

	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

type (
	ivyModule struct {
		XMLName        xml.Name `xml:"ivy-module"`
		Version        string   `xml:"version,attr"`
		XSI            string   `xml:"xmlns:xsi,attr"`
		SchemaLocation string   `xml:"xsi:noNamespaceSchemaLocation,attr"`
		Info           info     `xml:"info"`
		Dependencies   deps     `xml:"dependencies"`
	}

	info struct {
		Organisation string `xml:"organisation,attr"`
		Module       string `xml:"module,attr"`
		Revision     string `xml:"revision,attr"`
		Status       string `xml:"status,attr"`
	}

	deps struct {
		Dependency []dependency `xml:"dependency"`
	}

	dependency struct {
		Org  string `xml:"org,attr"`
		Name string `xml:"name,attr"`
		Rev  string `xml:"rev,attr"`
	}
)

// Generate renders the descriptor for a module and its flat dependency
// list, in input order. Status becomes the info element's status
// attribute; an empty status falls back to DefaultStatus. Escaping of
// module fields is delegated to encoding/xml.
func Generate(m coordinate.Module, dependencies []coordinate.Module, status string) (string, error) {
	if status == "" {
		status = DefaultStatus
	}

	doc := ivyModule{
		Version:        FormatVersion,
		XSI:            xsiNamespace,
		SchemaLocation: SchemaLocation,
		Info: info{
			Organisation: m.Group,
			Module:       m.Name,
			Revision:     m.Version,
			Status:       status,
		},
	}
	for _, dep := range dependencies {
		doc.Dependencies.Dependency = append(doc.Dependencies.Dependency, dependency{
			Org:  dep.Group,
			Name: dep.Name,
			Rev:  dep.Version,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render descriptor for %s: %w", m, err)
	}

	var out strings.Builder
	out.WriteString(xml.Header)
	out.Write(body)
	out.WriteString("\n")
	return out.String(), nil
}
