// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package os

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	bos "os"
)

func PathExists(path string) bool {
	_, err := bos.Stat(path)
	if err == nil {
		return true
	}

	if !errors.Is(err, fs.ErrNotExist) {
		slog.Error("could not check existence of path", "path", path, "error", err)
	}
	return false
}

func CopyFile(source string, target string) error {
	slog.Debug("Copying file", "source-path", source, "target-path", target)

	data, err := bos.ReadFile(source)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", source, err)
	}

	if err = bos.WriteFile(target, data, bos.ModePerm); err != nil {
		return fmt.Errorf("could not write file '%s': %w", target, err)
	}
	return nil
}
