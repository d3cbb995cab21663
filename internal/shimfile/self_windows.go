// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

//go:build windows

package shimfile

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// SelfPath returns the running executable's on-disk path as the OS reports it.
// A path that does not fit into MAX_PATH is fatal, since no sidecar path can
// be derived from it.
func SelfPath() (string, error) {
	var buf [MaxPath + 2]uint16

	n, err := windows.GetModuleFileName(0, &buf[0], MaxPath)
	if err != nil {
		return "", fmt.Errorf("could not determine module file name: %w", err)
	}
	if n >= MaxPath {
		return "", ErrPathTooLong
	}

	return windows.UTF16ToString(buf[:n]), nil
}
