// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"log/slog"

	"github.com/shimworks/shim/internal/logging"
)

type ExitCode int

const (
	// ExitCodeSuccess is also the fixed exit code after launching a windowed
	// child that is not waited on.
	ExitCodeSuccess ExitCode = 0

	// ExitCodeFailure signals an internal shim failure; it is never used to
	// mirror a child's exit code.
	ExitCodeFailure ExitCode = 1

	VerbosityFlagName      = "verbosity"
	VerbosityFlagShorthand = "v"
)

func VerbosityFlagHelp() string {
	debug := logging.LevelToLowerString(slog.LevelDebug)
	info := logging.LevelToLowerString(slog.LevelInfo)
	warn := logging.LevelToLowerString(slog.LevelWarn)
	err := logging.LevelToLowerString(slog.LevelError)

	return "log level/verbosity, either pre-defined levels, integer values or a combination of both.\n" +
		fmt.Sprintf("Pre-defined levels: %s = %d | %s = %d | %s = %d | %s = %d\n", debug, slog.LevelDebug, info, slog.LevelInfo, warn, slog.LevelWarn, err, slog.LevelError) +
		fmt.Sprintf("- e.g. '-v %s'\t-> %s\n", debug, debug) +
		fmt.Sprintf("- e.g. '-v %d'\t-> %s\n", slog.LevelWarn, warn)
}
