// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors with enough context to act on:
// what operation failed, which file or coordinate was involved, and what
// to try next.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error enriched with context for CLI display.
	//
	// Use the Context builder for construction:
	//
	//	err := issue.NewContext().
	//		WithOperation("publish artifact").
	//		WithResource("com.example:foo:1.2.3").
	//		WithSuggestion("Check that the binary jar path exists").
	//		Wrap(originalErr).
	//		BuildError()
	ActionableError struct {
		// Operation describes what was being attempted (e.g., "publish
		// artifact", "normalize archive").
		Operation string

		// Resource identifies the file, path or coordinate involved (optional).
		Resource string

		// Suggestions are hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError values.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates an empty Context builder.
func NewContext() *Context {
	return &Context{}
}

// WithOperation sets the operation being performed; a verb phrase like
// "publish artifact" or "load configuration".
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the file, path or coordinate involved.
func (c *Context) WithResource(res string) *Context {
	c.resource = res
	return c
}

// WithSuggestion adds a hint on how to fix the issue. May be called
// multiple times.
func (c *Context) WithSuggestion(s string) *Context {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap records the underlying cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build returns the assembled ActionableError.
func (c *Context) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError returns the assembled error as a plain error value.
func (c *Context) BuildError() error {
	return c.Build()
}

// Error returns the concise message for default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message with suggestions appended and, in verbose
// mode, the full error chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
