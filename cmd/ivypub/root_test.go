// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"ivypub/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "1.0.0", "abc123", "2026-01-01"
	got := getVersionString()
	for _, want := range []string{"1.0.0", "abc123", "2026-01-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("getVersionString() = %q, missing %q", got, want)
		}
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewContext().
		WithOperation("publish artifact").
		WithSuggestion("Check the coordinates").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "Check the coordinates") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, missing suggestion", got)
	}
}
