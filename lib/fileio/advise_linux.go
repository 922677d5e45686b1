// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package fileio

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential asks the kernel for aggressive readahead on file.
// Failure only costs throughput, so the error is dropped.
func adviseSequential(file *os.File) {
	rawConn, err := file.SyscallConn()
	if err != nil {
		return
	}
	rawConn.Control(func(fd uintptr) {
		_ = unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
	})
}
