// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCategory tells a script driving verity what kind of failure it
// got, through the exit path or --json output, without matching on
// message text.
type ErrorCategory string

const (
	// CategoryValidation: bad arguments, an unparseable root, or a
	// sidecar or bundle that fails to decode.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a named file is missing. Only [FileError]
	// produces it.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal: everything else, including output write failures.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError attaches a Category to an error returned from a command.
// errors.Is and errors.As see through it to Err.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns Err's message unchanged.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

func categorized(category ErrorCategory, format string, args []any) *ToolError {
	return &ToolError{Category: category, Err: fmt.Errorf(format, args...)}
}

// Validation formats a CategoryValidation error.
func Validation(format string, args ...any) *ToolError {
	return categorized(CategoryValidation, format, args)
}

// Internal formats a CategoryInternal error.
func Internal(format string, args ...any) *ToolError {
	return categorized(CategoryInternal, format, args)
}

// FileError wraps a failure to open or read a named file. fs.ErrNotExist
// anywhere in the chain makes it CategoryNotFound.
func FileError(err error) *ToolError {
	category := CategoryInternal
	if errors.Is(err, fs.ErrNotExist) {
		category = CategoryNotFound
	}
	return &ToolError{Category: category, Err: err}
}
