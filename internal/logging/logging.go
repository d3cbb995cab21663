// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shimworks/shim/internal/host"
)

func SetVerbosity(verbosity string, levelVar *slog.LevelVar) error {
	level, err := parseLevel(verbosity)
	if err != nil {
		return err
	}

	levelVar.Set(level)

	slog.Debug("logger level set", "level", level)

	return nil
}

func RootLogDir() string {
	return filepath.Join(host.SystemDrive(), "var", "log")
}

func LevelToLowerString(level slog.Level) string {
	return strings.ToLower(level.String())
}

// ShortenSourceAttribute strips the directory part from the source file path
// to keep log records compact.
func ShortenSourceAttribute(_ []string, attribute slog.Attr) slog.Attr {
	if attribute.Key == slog.SourceKey {
		source := attribute.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
	}
	return attribute
}

func parseLevel(input string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(input)); err != nil {
		parsedLevel, intErr := strconv.Atoi(input)
		if intErr != nil {
			return level, fmt.Errorf("cannot convert '%s' to log level: %w", input, errors.Join(err, intErr))
		}
		level = slog.Level(parsedLevel)
	}

	return level, nil
}

// InitializeLogFile creates the log directory and file if not existing and
// returns the open file handle.
func InitializeLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)

	if err := host.CreateDirIfNotExisting(dir); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		os.ModePerm,
	)
	if err != nil {
		return nil, fmt.Errorf("could not open log file '%s': %w", path, err)
	}

	return logFile, nil
}
