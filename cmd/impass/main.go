package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/impass-go/impass/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "impass",
	Short: "Fail-fast rewriting for fallible Go functions",
	Long: `impass rewrites functions annotated with //impass:fatal so that their
declared (T, error) outcome becomes a bare T: on success the unwrapped value
is returned, on failure the process prints a diagnostic report and exits.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to .impass.toml (default: search upward from cwd)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
