// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "publish artifact"},
			want: "failed to publish artifact",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "publish artifact", Resource: "com.example:foo:1.2.3"},
			want: "failed to publish artifact: com.example:foo:1.2.3",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "normalize archive",
				Resource:  "/tmp/foo.jar",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to normalize archive: /tmp/foo.jar: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextBuilder(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewContext().
		WithOperation("publish artifact").
		WithResource("com.example:foo:1.2.3").
		WithSuggestion("Check the repository root is writable").
		WithSuggestion("Re-run with --verbose for details").
		Wrap(cause).
		Build()

	if err.Operation != "publish artifact" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2 entries", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("built error does not wrap its cause")
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := NewContext().
		WithOperation("publish artifact").
		WithSuggestion("Check the coordinates").
		Wrap(errors.New("outer: inner")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Check the coordinates") {
		t.Errorf("Format(false) missing suggestion:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}
