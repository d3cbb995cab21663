// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

// Package launcher spawns the shim's target process and mirrors its lifetime:
// it builds the final Win32 command line, passes an explicit environment
// block, handles the elevation fallback and propagates the child's exit code.
package launcher

import "strings"

// BuildCommandLine concatenates the resolved target path and argument text
// into the single string handed to process creation. The OS call may rewrite
// its UTF-16 copy in place, so callers must treat that copy as a working
// buffer.
func BuildCommandLine(path, args string) string {
	return path + " " + args
}

// InvocationTail returns the verbatim remainder of the raw command line after
// the program-name prefix. The raw text is used instead of re-serializing a
// parsed argument list, because re-serialization can change quoting and break
// arguments with embedded quotes or mixed whitespace.
//
// When the raw line starts with a quote, the prefix is the program name plus
// its two surrounding quote characters; otherwise it is the program name as
// the OS reports it.
func InvocationTail(rawCmdLine, programName string) string {
	skip := len(programName)
	if strings.HasPrefix(rawCmdLine, `"`) {
		skip += 2
	}

	if skip >= len(rawCmdLine) {
		return ""
	}
	return rawCmdLine[skip:]
}

// StripQuotes removes one pair of surrounding double quotes, if present.
func StripQuotes(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path[1 : len(path)-1]
	}
	return path
}
