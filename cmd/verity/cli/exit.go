// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "strconv"

// ExitError carries a process exit status for an outcome the command
// has already printed, such as a rejected window. main exits with Code
// and prints nothing further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

// ExitCode returns Code.
func (e *ExitError) ExitCode() int { return e.Code }
