package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"srcdep/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "srcdep",
	Short: "Build requirement extractor for directive-annotated sources",
	Long:  `srcdep scans source trees for embedded /// directives and turns them into per-file build plans`,
}

// main registers subcommands and persistent flags, then executes the
// root command. Command errors exit with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(directivesCmd)
	rootCmd.AddCommand(switchesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color flag against the stdout TTY.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}
