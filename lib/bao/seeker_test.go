// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bao

import (
	"bytes"
	"io"
	"testing"
)

func TestForwardSeeker(t *testing.T) {
	seeker := NewForwardSeeker(bytes.NewReader(make([]byte, 100)), 4096)
	if seeker.Position() != 4096 {
		t.Fatalf("initial Position = %d, want 4096", seeker.Position())
	}

	if position, err := seeker.Seek(4096, io.SeekStart); err != nil || position != 4096 {
		t.Fatalf("Seek to current position = (%d, %v), want (4096, nil)", position, err)
	}

	if _, err := io.ReadFull(seeker, make([]byte, 30)); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if seeker.Position() != 4126 {
		t.Errorf("Position after reading 30 bytes = %d, want 4126", seeker.Position())
	}
	if position, err := seeker.Seek(0, io.SeekCurrent); err != nil || position != 4126 {
		t.Errorf("Seek(0, SeekCurrent) = (%d, %v), want (4126, nil)", position, err)
	}

	tests := []struct {
		name   string
		offset int64
		whence int
	}{
		{"backward", 4096, io.SeekStart},
		{"forward skip", 4200, io.SeekStart},
		{"relative skip", 10, io.SeekCurrent},
		{"relative backward", -1, io.SeekCurrent},
		{"from end", 0, io.SeekEnd},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			position, err := seeker.Seek(test.offset, test.whence)
			if err == nil {
				t.Errorf("Seek(%d, %d) succeeded, want an error", test.offset, test.whence)
			}
			if position != 4126 {
				t.Errorf("failed Seek reported position %d, want 4126", position)
			}
		})
	}

	if seeker.Position() != 4126 {
		t.Errorf("failed seeks moved the position to %d", seeker.Position())
	}
}
