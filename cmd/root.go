package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "codecutter [config-file]",
	Short: "A CI quality gate built around the InspectCode static-analysis engine",
	Long: `CodeCutter resolves a project configuration, provisions the InspectCode
command-line tools into a local cache, runs them against the configured
solution and turns the resulting report into a pass/fail verdict.

The optional argument is a path to a configuration file. Without it the
tool directory is searched for codecutter.json, then for a solution file
to build a default configuration from.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runGate,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("codecutter version %s\n", Version)
		},
	})
}
