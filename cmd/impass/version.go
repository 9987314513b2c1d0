package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/impass-go/impass/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show impass build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "impass %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.BuildDate)
		}
	},
}
