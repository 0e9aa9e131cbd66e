// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to override the config directory.
// os.UserHomeDir() doesn't reliably respect the HOME environment variable
// on all platforms, so tests point this at a temp directory instead.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path. Intended for
// tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
