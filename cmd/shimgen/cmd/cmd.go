// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"log/slog"

	"github.com/shimworks/shim/cmd/shimgen/cmd/create"
	"github.com/shimworks/shim/cmd/shimgen/cmd/show"
	"github.com/shimworks/shim/cmd/shimgen/cmd/version"

	"github.com/shimworks/shim/internal/cli"
	"github.com/shimworks/shim/internal/logging"

	"github.com/spf13/cobra"
)

func Create(levelVar *slog.LevelVar) *cobra.Command {
	verbosity := ""
	cmd := &cobra.Command{
		Use:   "shimgen",
		Short: "shimgen – command-line tool to create and inspect shim sidecar files",
		Long:  ``,

		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.SetVerbosity(verbosity, levelVar)
		},
	}

	cmd.AddCommand(create.CreateShimCmd)
	cmd.AddCommand(show.ShowShimCmd)
	cmd.AddCommand(version.VersionCmd)

	cmd.PersistentFlags().StringVarP(&verbosity, cli.VerbosityFlagName, cli.VerbosityFlagShorthand, logging.LevelToLowerString(slog.LevelInfo), cli.VerbosityFlagHelp())

	return cmd
}
