// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

//go:build windows
// +build windows

// shim.exe redirects to the target configured in its sidecar '<name>.shim'
// file: it resolves the sidecar from its own path, expands placeholders,
// forwards its own invocation arguments verbatim, launches the target and
// mirrors the target's exit code. It takes no flags of its own, every bit of
// argument text belongs to the target.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogmulti "github.com/samber/slog-multi"

	"github.com/shimworks/shim/internal/cli"
	"github.com/shimworks/shim/internal/launcher"
	"github.com/shimworks/shim/internal/logging"
	"github.com/shimworks/shim/internal/shimfile"
)

const (
	cliName = "shim"

	// debugEnvVar enables the per-invocation JSON debug log. The shim cannot
	// take a verbosity flag, all argv text is forwarded to the target.
	debugEnvVar = "SHIM_DEBUG"
)

func main() {
	os.Exit(int(run()))
}

func run() cli.ExitCode {
	if logFile := setupLogging(); logFile != nil {
		defer func() {
			_ = logFile.Sync()
			_ = logFile.Close()
		}()
	}

	selfPath, err := shimfile.SelfPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shim: %v\n", err)
		return cli.ExitCodeFailure
	}

	sidecarPath, err := shimfile.Locate(selfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shim: %v\n", err)
		return cli.ExitCodeFailure
	}

	cfg := shimfile.Parse(sidecarPath)
	if !cfg.HasPath() {
		fmt.Fprintln(os.Stderr, "could not read shim file")
		return cli.ExitCodeFailure
	}

	// Append the live argument tail from the raw command line, never from the
	// parsed argument list, to preserve the caller's exact quoting.
	cfg.Args += launcher.InvocationTail(launcher.RawCommandLine(), os.Args[0])

	slog.Debug("sidecar resolved", "sidecar", sidecarPath, "path", cfg.Path, "args", cfg.Args, "envVars", len(cfg.EnvVars))

	windowed, err := launcher.IsWindowedApp(cfg.Path)
	if err != nil {
		slog.Warn("could not determine if target is a GUI app, assuming console", "error", err)
	}

	if windowed {
		if err := launcher.DetachConsole(); err != nil {
			slog.Warn("could not detach console", "error", err)
		}
	}

	job, err := launcher.NewKillOnCloseJob()
	if err != nil {
		slog.Warn("proceeding without kill-on-exit guarantee", "error", err)
	} else {
		defer job.Close()
	}

	environ := launcher.MergeEnviron(os.Environ(), cfg.EnvVars)

	result, err := launcher.Launch(cfg, environ)
	if err != nil || !result.Created() {
		fmt.Fprintf(os.Stderr, "shim: %v\n", err)
		return cli.ExitCodeFailure
	}
	defer result.Close()

	if windowed {
		// A windowed child outlives the shim on purpose; it is neither
		// assigned to the job nor waited on.
		slog.Debug("windowed target launched, not waiting")
		return cli.ExitCodeSuccess
	}

	if job != nil {
		if err := job.Assign(result.Process); err != nil {
			slog.Warn("proceeding without kill-on-exit guarantee", "error", err)
		}
	}

	exitCode, err := launcher.WaitForExit(result.Process)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shim: %v\n", err)
		return cli.ExitCodeFailure
	}

	slog.Debug("child exited", "exitCode", exitCode)

	return cli.ExitCode(exitCode)
}

// setupLogging writes warnings to stderr always and, when SHIM_DEBUG is set,
// fans out debug records to a per-invocation JSON log file. Returns the log
// file handle, nil when file logging is off or unavailable.
func setupLogging() *os.File {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})

	if os.Getenv(debugEnvVar) == "" {
		slog.SetDefault(slog.New(stderrHandler))
		return nil
	}

	logDir := filepath.Join(logging.RootLogDir(), cliName)
	logPath := filepath.Join(logDir, fmt.Sprintf("%s-%d-%d.log", cliName, os.Getpid(), time.Now().Unix()))

	logFile, err := logging.InitializeLogFile(logPath)
	if err != nil {
		slog.SetDefault(slog.New(stderrHandler))
		slog.Warn("could not initialize debug log file", "error", err)
		return nil
	}

	fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   true,
		ReplaceAttr: logging.ShortenSourceAttribute,
	})

	slog.SetDefault(slog.New(slogmulti.Fanout(stderrHandler, fileHandler)).With("component", cliName))
	slog.Debug("debug logging enabled", "logFile", logPath, "args", os.Args)

	return logFile
}
