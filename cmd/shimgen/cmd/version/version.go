// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

package version

import (
	ve "github.com/shimworks/shim/internal/version"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the current version of the CLI",
	Long:  ``,
	RunE:  showVersion,
}

const cliName = "shimgen"

func init() {
	VersionCmd.Flags().SortFlags = false
	VersionCmd.Flags().PrintDefaults()
}

func showVersion(ccmd *cobra.Command, args []string) error {
	ve.GetVersion().Print(cliName, pterm.Printf)

	return nil
}
