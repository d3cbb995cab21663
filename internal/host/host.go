// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"log/slog"
	"os"
)

// SystemDrive returns a hard-coded 'C:\' drive string instead of querying the
// actual system drive, so that log locations stay predictable across hosts.
//
// Note: This string has already the backslash '\' attached, because Go's filepath.Join() would otherwise not be able to correctly join the drive and other path components
// (see https://github.com/golang/go/issues/26953).
func SystemDrive() string {
	return "C:\\"
}

func CreateDirIfNotExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	slog.Debug("Dir not existing, creating it", "path", path)

	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("could not create directory '%s': %w", path, err)
	}
	return nil
}
