// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

//go:build windows

package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/shimworks/shim/internal/shimfile"
)

// ProcessResult owns the kernel handles of a created child process. A zero
// Process handle means no process was created. The elevation fallback yields
// no thread handle.
type ProcessResult struct {
	Process  windows.Handle
	Thread   windows.Handle
	Elevated bool
}

func (r *ProcessResult) Created() bool {
	return r.Process != 0
}

// Close releases both handles exactly once, regardless of exit path.
func (r *ProcessResult) Close() {
	if r.Process != 0 {
		if err := windows.CloseHandle(r.Process); err != nil {
			slog.Warn("could not close process handle", "error", err)
		}
		r.Process = 0
	}
	if r.Thread != 0 {
		if err := windows.CloseHandle(r.Thread); err != nil {
			slog.Warn("could not close thread handle", "error", err)
		}
		r.Thread = 0
	}
}

// Launch creates the target process with the given explicit environment.
//
// The direct path creates the child suspended and resumes it immediately; the
// window between the two calls is contractual, so that the child can be
// inspected or modified before it runs. When the target requires elevation,
// creation falls back to a shell-execute launch which opens a separate,
// visible window and cannot supply a thread handle.
func Launch(cfg shimfile.Config, environ []string) (ProcessResult, error) {
	var result ProcessResult

	cmdLine := BuildCommandLine(cfg.Path, cfg.Args)
	cmdLineUTF16, err := windows.UTF16FromString(cmdLine)
	if err != nil {
		return result, fmt.Errorf("could not encode command line: %w", err)
	}

	envBlock, err := utf16EnvBlock(environ)
	if err != nil {
		return result, fmt.Errorf("could not encode environment block: %w", err)
	}

	var startupInfo windows.StartupInfo
	if err := windows.GetStartupInfo(&startupInfo); err != nil {
		slog.Warn("could not query startup info", "error", err)
	}
	startupInfo.Cb = uint32(unsafe.Sizeof(startupInfo))

	var procInfo windows.ProcessInformation

	slog.Debug("creating suspended child", "cmdLine", cmdLine)

	err = windows.CreateProcess(
		nil,
		&cmdLineUTF16[0], // mutable working buffer, rewritten in place by the OS
		nil, nil,
		true,
		windows.CREATE_SUSPENDED|windows.CREATE_UNICODE_ENVIRONMENT,
		envBlock,
		nil,
		&startupInfo,
		&procInfo,
	)

	switch {
	case err == nil:
		result.Process = procInfo.Process
		result.Thread = procInfo.Thread

		if _, err := windows.ResumeThread(procInfo.Thread); err != nil {
			slog.Warn("could not resume child thread", "error", err)
		}
	case errors.Is(err, windows.ERROR_ELEVATION_REQUIRED):
		slog.Debug("target requires elevation, falling back to shell execute")

		process, fallbackErr := launchElevated(cfg)
		if fallbackErr != nil {
			return result, fmt.Errorf("unable to create elevated process: %w", fallbackErr)
		}
		result.Process = process
		result.Elevated = true
	default:
		return result, fmt.Errorf("could not create process with command '%s': %w", cmdLine, err)
	}

	if err := IgnoreConsoleSignals(); err != nil {
		slog.Warn("could not set control handler; Ctrl-C behavior may be invalid", "error", err)
	}

	return result, nil
}

// launchElevated starts the target through the shell so the OS can elevate
// it. ShellExecuteEx cannot take an explicit environment block, it inherits
// this process's environment, so only on this path the sidecar overrides are
// written into the shim's own environment first.
func launchElevated(cfg shimfile.Config) (windows.Handle, error) {
	for _, envVar := range cfg.EnvVars {
		if err := os.Setenv(envVar.Name, envVar.Value); err != nil {
			slog.Warn("could not set environment variable", "name", envVar.Name, "error", err)
		}
	}

	file, err := windows.UTF16PtrFromString(StripQuotes(cfg.Path))
	if err != nil {
		return 0, fmt.Errorf("could not encode target path: %w", err)
	}
	params, err := windows.UTF16PtrFromString(cfg.Args)
	if err != nil {
		return 0, fmt.Errorf("could not encode target arguments: %w", err)
	}

	info := shellExecuteInfo{
		fMask:        seeMaskNoCloseProcess,
		lpFile:       file,
		lpParameters: params,
		nShow:        swShow,
	}

	if err := shellExecuteEx(&info); err != nil {
		return 0, err
	}
	return info.hProcess, nil
}

var ctrlHandlerOnce sync.Once
var ctrlHandler uintptr

// IgnoreConsoleSignals claims every interrupt/break/close/logoff/shutdown
// event as handled so the shim itself survives it. The child has its own
// console signal state and decides on its own how to react.
func IgnoreConsoleSignals() error {
	ctrlHandlerOnce.Do(func() {
		ctrlHandler = windows.NewCallback(func(ctrlType uint32) uintptr {
			return 1 // handled, do not take the default action
		})
	})
	return setConsoleCtrlHandler(ctrlHandler)
}

// IsWindowedApp reports whether the target is built for the GUI subsystem.
// The shim does not wait on windowed children. Callers should assume a
// console application when the query errors, favoring correct exit-code
// propagation over cosmetic console handling.
func IsWindowedApp(path string) (bool, error) {
	unquoted, err := windows.UTF16PtrFromString(StripQuotes(path))
	if err != nil {
		return false, fmt.Errorf("could not encode target path: %w", err)
	}

	ret := shGetFileInfoExeType(unquoted)
	if ret == 0 {
		return false, errors.New("executable type query returned no result")
	}

	return (ret>>16)&0xffff != 0, nil
}

// WaitForExit blocks until the child terminates and returns its exit code.
// The wait is deliberately unbounded: downstream of launch, the shim's whole
// purpose is to mirror the child's lifetime.
func WaitForExit(process windows.Handle) (uint32, error) {
	if _, err := windows.WaitForSingleObject(process, windows.INFINITE); err != nil {
		return 0, fmt.Errorf("could not wait for child process: %w", err)
	}

	var exitCode uint32
	if err := windows.GetExitCodeProcess(process, &exitCode); err != nil {
		return 0, fmt.Errorf("could not query child exit code: %w", err)
	}
	return exitCode, nil
}

// RawCommandLine returns the unparsed command-line text the OS handed this
// process, the only source that preserves the caller's exact quoting.
func RawCommandLine() string {
	return windows.UTF16PtrToString(windows.GetCommandLine())
}

// DetachConsole frees the shim's console before handing off to a windowed
// child. The console may still flash for a fraction of time; there is no
// workaround for that.
func DetachConsole() error {
	return freeConsole()
}

// utf16EnvBlock converts the environment list into the double-NUL-terminated
// UTF-16 block expected by process creation.
func utf16EnvBlock(environ []string) (*uint16, error) {
	if len(environ) == 0 {
		block := []uint16{0, 0}
		return &block[0], nil
	}

	var block []uint16
	for _, keyValue := range environ {
		encoded, err := windows.UTF16FromString(keyValue)
		if err != nil {
			return nil, fmt.Errorf("could not encode environment entry '%s': %w", keyValue, err)
		}
		block = append(block, encoded...)
	}
	block = append(block, 0)

	return &block[0], nil
}
