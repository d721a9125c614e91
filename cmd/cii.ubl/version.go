package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// build metadata, set via -ldflags at release time.
var (
	version = "dev"
	date    = ""
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the tool",
		Run: func(cmd *cobra.Command, _ []string) {
			out := fmt.Sprintf("cii.ubl %s", version)
			if date != "" {
				out += fmt.Sprintf(" (%s)", date)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		},
	}
}
