// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestToolError_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
		message  string
	}{
		{"validation", Validation("bad offset %d", 7), CategoryValidation, "bad offset 7"},
		{"internal", Internal("write failed"), CategoryInternal, "write failed"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			if test.err.Error() != test.message {
				t.Errorf("Error() = %q, want %q", test.err.Error(), test.message)
			}
		})
	}
}

func TestToolError_PreservesChain(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := fmt.Errorf("command: %w", Validation("wrapped: %w", sentinel))

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is lost the wrapped sentinel")
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) {
		t.Fatal("errors.As did not find the ToolError")
	}
	if toolError.Category != CategoryValidation {
		t.Errorf("Category = %q, want %q", toolError.Category, CategoryValidation)
	}
}

func TestFileError(t *testing.T) {
	_, err := os.Open(filepath.Join(t.TempDir(), "missing"))
	if got := FileError(err); got.Category != CategoryNotFound {
		t.Errorf("missing file: Category = %q, want %q", got.Category, CategoryNotFound)
	}
	if !errors.Is(FileError(err), fs.ErrNotExist) {
		t.Error("FileError lost fs.ErrNotExist")
	}

	if got := FileError(errors.New("disk on fire")); got.Category != CategoryInternal {
		t.Errorf("other failure: Category = %q, want %q", got.Category, CategoryInternal)
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}

	var coder interface{ ExitCode() int }
	if !errors.As(err, &coder) {
		t.Fatal("ExitError does not expose ExitCode")
	}
	if coder.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", coder.ExitCode())
	}
	if err.Error() != "exit status 1" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit status 1")
	}
}
