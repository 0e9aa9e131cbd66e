// SPDX-License-Identifier: MPL-2.0

// Package repo models how the local publish repository is registered with
// a dependency-resolution host.
//
// The publisher core only writes the filesystem layout; this package
// captures the resolver settings a consuming build needs so that it reads
// artifacts and descriptors from exactly the layout the core writes. It
// performs no resolution itself.
package repo

// Maven-style layout patterns, relative to the repository URL.
// The publisher writes organisations with dots as path separators, which
// is what m2compatible resolution expects.
const (
	ArtifactPattern = "[organisation]/[module]/[revision]/[artifact]-[revision](-[classifier]).[ext]"
	IvyPattern      = "[organisation]/[module]/[revision]/ivy-[revision].xml"
)

// Resolver describes one registered repository.
type Resolver struct {
	// URL is the repository root the patterns are resolved against.
	URL string

	// ArtifactPattern locates jars and other artifacts.
	ArtifactPattern string

	// IvyPattern locates ivy-<revision>.xml descriptors.
	IvyPattern string

	// M2Compatible maps dots in the organisation to path separators,
	// matching the layout the publisher writes.
	M2Compatible bool

	// UseDescriptors sources module metadata from the published
	// descriptors instead of synthesizing it from artifact presence.
	UseDescriptors bool

	// AllowInsecureProtocol permits plain file:// and http:// URLs; local
	// publish repositories are typically not served over TLS.
	AllowInsecureProtocol bool

	// ResolveDynamicRevisions is kept off: the publisher always writes
	// exact revisions, so dynamic revision resolution would only add
	// lookups that can never match.
	ResolveDynamicRevisions bool
}

// Option customizes a Resolver during registration.
type Option func(*Resolver)

// Register builds the Resolver for a repository at url, applying the
// defaults the publisher's layout requires and then any options.
func Register(url string, opts ...Option) *Resolver {
	r := &Resolver{
		URL:                     url,
		ArtifactPattern:         ArtifactPattern,
		IvyPattern:              IvyPattern,
		M2Compatible:            true,
		UseDescriptors:          true,
		AllowInsecureProtocol:   true,
		ResolveDynamicRevisions: false,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithArtifactPattern overrides the artifact pattern.
func WithArtifactPattern(pattern string) Option {
	return func(r *Resolver) {
		r.ArtifactPattern = pattern
	}
}

// WithIvyPattern overrides the descriptor pattern.
func WithIvyPattern(pattern string) Option {
	return func(r *Resolver) {
		r.IvyPattern = pattern
	}
}

// WithSecureProtocolOnly disallows insecure protocols for repositories
// that are actually served over TLS.
func WithSecureProtocolOnly() Option {
	return func(r *Resolver) {
		r.AllowInsecureProtocol = false
	}
}
