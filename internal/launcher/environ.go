// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package launcher

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/shimworks/shim/internal/shimfile"
)

// MergeEnviron builds the child's environment from the inherited base plus the
// sidecar's ordered overrides. Overrides are applied in file order, so a
// duplicated name simply wins with its last value. Variable names compare
// case-insensitively, matching Win32 environment semantics.
//
// Building an explicit list instead of mutating the shim's own process
// environment keeps the operation free of process-wide side effects.
func MergeEnviron(base []string, overrides []shimfile.EnvVar) []string {
	merged := slices.Clone(base)

	for _, override := range overrides {
		entry := override.Name + "=" + override.Value

		_, index, found := lo.FindIndexOf(merged, func(kv string) bool {
			name, _, ok := strings.Cut(kv, "=")
			return ok && strings.EqualFold(name, override.Name)
		})

		if found {
			merged[index] = entry
		} else {
			merged = append(merged, entry)
		}
	}
	return merged
}
