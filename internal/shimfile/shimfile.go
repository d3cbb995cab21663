// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

// Package shimfile resolves the sidecar configuration of a shim executable:
// it derives the sidecar path from the shim's own path, parses the
// line-oriented key/value format and applies placeholder substitution.
package shimfile

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Extension of the sidecar file, replacing the shim's '.exe'.
	Extension = ".shim"

	// MaxPath is the classic Win32 MAX_PATH limit. Shim executables beyond
	// this length cannot derive a sidecar path.
	MaxPath = 260

	// separator between key and value; the surrounding spaces are part of
	// the token, there is no escaping and no comment syntax.
	separator = " = "

	// dirPlaceholder in an 'args' value expands to the sidecar's directory.
	dirPlaceholder = "%~dp0"

	pathKey = "path"
	argsKey = "args"

	maxLineBytes = 1 << 20
)

var ErrPathTooLong = errors.New("executable path is too long to derive a sidecar path")

// EnvVar is a single name/value pair from the sidecar file. Order matters and
// duplicate names are preserved; applying them in order gives last-write-wins.
type EnvVar struct {
	Name  string
	Value string
}

// Config is the parsed, post-substitution content of a sidecar file.
type Config struct {
	// Path is the launchable target, quoted if it contains whitespace.
	// Empty means the sidecar could not be read; there is no separate
	// "missing" vs. "malformed" signal.
	Path string

	// Args is the argument template with %~dp0 already expanded. The shim's
	// own invocation tail is appended later, at launch time.
	Args string

	EnvVars []EnvVar
}

func (c Config) HasPath() bool {
	return c.Path != ""
}

// Locate derives the sidecar path from the shim executable's own path by
// swapping the extension for '.shim'.
func Locate(selfExePath string) (string, error) {
	if len(selfExePath) >= MaxPath {
		return "", ErrPathTooLong
	}
	return strings.TrimSuffix(selfExePath, filepath.Ext(selfExePath)) + Extension, nil
}

// Parse reads the sidecar file at the given path. An unreadable file yields a
// Config without a target path; malformed lines are skipped, not rejected.
func Parse(path string) Config {
	return parse(path, processEnv{})
}

func parse(path string, env EnvSource) Config {
	var cfg Config

	file, err := os.Open(path)
	if err != nil {
		slog.Debug("could not open sidecar file", "path", path, "error", err)
		return cfg
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("could not close sidecar file", "path", path, "error", err)
		}
	}()

	argsSet := false

	scanner := bufio.NewScanner(decodeSidecar(file))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		sep := strings.Index(line, separator)
		if sep < 1 {
			// no separator or empty name
			continue
		}

		name := line[:sep]
		value := line[sep+len(separator):]

		switch name {
		case pathKey:
			// last occurrence wins
			cfg.Path = quoteIfNeeded(expandEnvIn(value, env))
		case argsKey:
			cfg.Args = value
			argsSet = true
		default:
			cfg.EnvVars = append(cfg.EnvVars, EnvVar{Name: name, Value: expandEnvIn(value, env)})
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Debug("error while reading sidecar file", "path", path, "error", err)
	}

	if argsSet {
		cfg.Args = replaceDirPlaceholder(cfg.Args, filepath.Dir(path))
	}

	return cfg
}

// quoteIfNeeded wraps a target path in double quotes when it contains a space
// and is not already quoted. Deleting or re-quoting a pre-quoted value would
// corrupt deliberate quoting, so those are left untouched.
func quoteIfNeeded(path string) string {
	if strings.Contains(path, " ") && !strings.HasPrefix(path, `"`) {
		return `"` + path + `"`
	}
	return path
}

// replaceDirPlaceholder substitutes the first %~dp0 occurrence with the
// sidecar's containing directory. Exactly one substitution, rest verbatim.
func replaceDirPlaceholder(args, dir string) string {
	return strings.Replace(args, dirPlaceholder, dir, 1)
}
