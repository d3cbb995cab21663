// SPDX-FileCopyrightText: © 2025 Shimworks
// SPDX-License-Identifier: MIT

package shimfile

import (
	"fmt"
	"os"
	"strings"
)

// Format renders a sidecar file body. The target path comes first, followed by
// the argument template and environment variables in their given order.
func Format(path, args string, envVars []EnvVar) string {
	var sb strings.Builder

	writeLine := func(name, value string) {
		sb.WriteString(name)
		sb.WriteString(separator)
		sb.WriteString(value)
		sb.WriteString("\r\n")
	}

	writeLine(pathKey, path)

	if args != "" {
		writeLine(argsKey, args)
	}

	for _, envVar := range envVars {
		writeLine(envVar.Name, envVar.Value)
	}

	return sb.String()
}

// Write writes a sidecar file as UTF-8 without BOM, which the parser's
// charset detection reads back unchanged.
func Write(sidecarPath, targetPath, args string, envVars []EnvVar) error {
	content := Format(targetPath, args, envVars)

	if err := os.WriteFile(sidecarPath, []byte(content), os.ModePerm); err != nil {
		return fmt.Errorf("could not write sidecar file '%s': %w", sidecarPath, err)
	}
	return nil
}
