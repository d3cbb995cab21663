// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

package create

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shimworks/shim/internal/os"
	"github.com/shimworks/shim/internal/shimfile"
)

const (
	shimPathFlag  = "shim-path"
	targetFlag    = "target"
	argsFlag      = "args"
	envFlag       = "env"
	sourceExeFlag = "source-exe"
)

var (
	createExample = `
  # Create a sidecar file next to an existing shim executable
  shimgen create -s c:\tools\bin\kubectl.exe -t c:\tools\kubectl\kubectl.exe

  # Create shim executable and sidecar with argument template and env vars
  shimgen create -s c:\tools\bin\app.exe -x c:\tools\shim.exe -t "c:\program files\app\app.exe" -a "--config %~dp0app.yaml" -e APP_HOME=c:\tools\app
`
	CreateShimCmd = &cobra.Command{
		Use:     "create",
		Short:   "Creates a shim sidecar file, optionally copying the shim executable",
		Long:    ``,
		RunE:    createShim,
		Example: createExample,
	}
)

func init() {
	includeCreateFlags(CreateShimCmd.Flags())
}

func includeCreateFlags(flags *pflag.FlagSet) {
	flags.StringP(shimPathFlag, "s", "", `Path of the shim executable, e.g. c:\tools\bin\kubectl.exe`)
	flags.StringP(targetFlag, "t", "", `Path of the target executable the shim redirects to`)
	flags.StringP(argsFlag, "a", "", `Argument template prepended to the shim's own arguments; %~dp0 expands to the sidecar's directory`)
	flags.StringArrayP(envFlag, "e", nil, `Environment variable for the target as NAME=VALUE, repeatable`)
	flags.StringP(sourceExeFlag, "x", "", `Shim executable to copy to the shim path; omit to only write the sidecar file`)
	flags.SortFlags = false
	flags.PrintDefaults()
}

func createShim(cmd *cobra.Command, args []string) error {
	shimPath := cmd.Flags().Lookup(shimPathFlag).Value.String()
	target := cmd.Flags().Lookup(targetFlag).Value.String()
	argsTemplate := cmd.Flags().Lookup(argsFlag).Value.String()
	sourceExe := cmd.Flags().Lookup(sourceExeFlag).Value.String()

	envEntries, err := cmd.Flags().GetStringArray(envFlag)
	if err != nil {
		return fmt.Errorf("could not read flag '%s': %w", envFlag, err)
	}

	if shimPath == "" {
		return fmt.Errorf("flag '%s' must not be empty", shimPathFlag)
	}
	if target == "" {
		return fmt.Errorf("flag '%s' must not be empty", targetFlag)
	}

	envVars, err := parseEnvEntries(envEntries)
	if err != nil {
		return err
	}

	sidecarPath, err := shimfile.Locate(shimPath)
	if err != nil {
		return fmt.Errorf("could not derive sidecar path from '%s': %w", shimPath, err)
	}

	if err := shimfile.Write(sidecarPath, target, argsTemplate, envVars); err != nil {
		return err
	}

	slog.Debug("sidecar file written", "path", sidecarPath, "target", target)

	if sourceExe != "" {
		if err := os.CopyFile(sourceExe, shimPath); err != nil {
			return fmt.Errorf("could not copy shim executable: %w", err)
		}
	}

	pterm.Printf("Created shim '%s' -> '%s'\n", shimPath, target)

	return nil
}

func parseEnvEntries(entries []string) ([]shimfile.EnvVar, error) {
	var envVars []shimfile.EnvVar
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid env entry '%s', expected NAME=VALUE", entry)
		}
		envVars = append(envVars, shimfile.EnvVar{Name: name, Value: value})
	}
	return envVars, nil
}
