// Package main provides the entry point for the diskunit CLI tool.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/diskunit/cmd/diskunit/commands"
	"github.com/Sumatoshi-tech/diskunit/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := commands.NewRootCommand()

	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
