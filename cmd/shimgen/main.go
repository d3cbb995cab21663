// SPDX-FileCopyrightText: © 2025 Shimworks
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"

	"github.com/shimworks/shim/cmd/shimgen/cmd"

	"github.com/shimworks/shim/internal/logging"
)

func main() {
	var levelVar = new(slog.LevelVar)
	options := &slog.HandlerOptions{
		Level:       levelVar,
		AddSource:   true,
		ReplaceAttr: logging.ShortenSourceAttribute}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, options)))

	rootCmd := cmd.Create(levelVar)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("error occurred while executing the command", "error", err)
		os.Exit(1)
	}
}
