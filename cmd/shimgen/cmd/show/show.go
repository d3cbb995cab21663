// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

package show

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/shimworks/shim/internal/os"
	"github.com/shimworks/shim/internal/shimfile"
)

var (
	showExample = `
  # Show the resolved configuration of a shim
  shimgen show c:\tools\bin\kubectl.exe
`
	ShowShimCmd = &cobra.Command{
		Use:     "show <shim-path>",
		Short:   "Shows the resolved configuration of a shim",
		Long:    ``,
		Args:    cobra.ExactArgs(1),
		RunE:    showShim,
		Example: showExample,
	}
)

func showShim(cmd *cobra.Command, args []string) error {
	shimPath := args[0]

	sidecarPath := shimPath
	if !strings.EqualFold(filepath.Ext(shimPath), shimfile.Extension) {
		resolved, err := shimfile.Locate(shimPath)
		if err != nil {
			return fmt.Errorf("could not derive sidecar path from '%s': %w", shimPath, err)
		}
		sidecarPath = resolved
	}

	if !os.PathExists(sidecarPath) {
		return fmt.Errorf("sidecar file '%s' does not exist", sidecarPath)
	}

	config := shimfile.Parse(sidecarPath)
	if !config.HasPath() {
		return fmt.Errorf("sidecar file '%s' does not contain a target path", sidecarPath)
	}

	pterm.Printf("Sidecar: %s\n", sidecarPath)
	pterm.Printf("Target:  %s\n", config.Path)
	pterm.Printf("Args:    %s\n", config.Args)

	if len(config.EnvVars) == 0 {
		return nil
	}

	rows := lo.Map(config.EnvVars, func(envVar shimfile.EnvVar, _ int) []string {
		return []string{envVar.Name, envVar.Value}
	})

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(append(pterm.TableData{{"ENV VAR", "VALUE"}}, rows...)).
		Render()
}
