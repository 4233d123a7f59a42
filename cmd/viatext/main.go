package main

import (
	"os"

	cmd "github.com/AltGrid/viatext-core-sub000/cmd/viatext/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	// Do not print usage when a command fails
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
