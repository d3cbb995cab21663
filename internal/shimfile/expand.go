// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package shimfile

import (
	"os"
	"strings"
)

// EnvSource looks up environment variables during placeholder expansion.
type EnvSource interface {
	LookupEnv(name string) (string, bool)
}

type processEnv struct{}

func (processEnv) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ExpandEnv substitutes %NAME% placeholders with values from the process
// environment. See expandEnvIn for the exact rules.
func ExpandEnv(text string) string {
	return expandEnvIn(text, processEnv{})
}

// expandEnvIn scans left to right for %NAME% pairs, single pass:
//   - a defined name is replaced, delimiters included; the replacement text is
//     never re-scanned
//   - an undefined name is left completely verbatim, since deleting an
//     unresolvable reference would silently corrupt path-like values
//   - %% is a literal escape and passes through untouched
//   - an opening % without a closing one ends the scan, rest untouched
func expandEnvIn(text string, env EnvSource) string {
	var out strings.Builder
	pos := 0

	for pos < len(text) {
		start := strings.IndexByte(text[pos:], '%')
		if start < 0 {
			break
		}
		start += pos

		if start+1 >= len(text) {
			break
		}

		end := strings.IndexByte(text[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1

		name := text[start+1 : end]
		if name == "" {
			out.WriteString(text[pos : end+1])
			pos = end + 1
			continue
		}

		if value, found := env.LookupEnv(name); found {
			out.WriteString(text[pos:start])
			out.WriteString(value)
		} else {
			out.WriteString(text[pos : end+1])
		}
		pos = end + 1
	}

	out.WriteString(text[pos:])
	return out.String()
}
