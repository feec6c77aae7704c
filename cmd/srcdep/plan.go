package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"srcdep/internal/diagfmt"
	"srcdep/internal/driver"
	"srcdep/internal/observ"
	"srcdep/internal/planfmt"
)

var planCmd = &cobra.Command{
	Use:   "plan [flags] <file|directory>",
	Short: "Resolve directives into a per-file build plan",
	Long:  `Scan the target for /// directives, resolve switches and guards, and emit the resulting build requirements`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().String("format", "pretty", "output format (pretty|json|flags)")
	planCmd.Flags().StringArray("switch", nil, "switch override NAME=0|1 (repeatable)")
	planCmd.Flags().String("marker", "", "directive comment marker (default ///)")
	planCmd.Flags().Int("jobs", 0, "max parallel workers for directory scanning (0=auto)")
	planCmd.Flags().Bool("no-cache", false, "disable the persistent scan cache")
	planCmd.Flags().Bool("show-switches", false, "include the resolved switch table per file")
	planCmd.Flags().Bool("with-lines", false, "include source lines in json output")
	planCmd.Flags().String("define-prefix", planfmt.DefaultDefinePrefix, "prefix for -D defines in flags output")
	planCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runPlan executes the plan command end to end: scan, resolve, render.
// Diagnostics go to stderr; the plan goes to stdout. The exit status is
// non-zero when any diagnostic aborted a file's plan.
func runPlan(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "flags":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	showSwitches, err := cmd.Flags().GetBool("show-switches")
	if err != nil {
		return fmt.Errorf("failed to get show-switches flag: %w", err)
	}
	withLines, err := cmd.Flags().GetBool("with-lines")
	if err != nil {
		return fmt.Errorf("failed to get with-lines flag: %w", err)
	}
	definePrefix, err := cmd.Flags().GetString("define-prefix")
	if err != nil {
		return fmt.Errorf("failed to get define-prefix flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts, err := buildScanOptions(cmd, target)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()
	phase := timer.Begin("scan+resolve")
	result, err := driver.Plan(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d files", result.FileSet.Len()))

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := "relative"
	if fullPath {
		pathMode = "absolute"
	}

	if result.Bag.Len() > 0 && !quiet {
		prettyOpts := diagfmt.PrettyOpts{
			Color:    colored,
			Context:  true,
			PathMode: pathMode,
		}
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	phase = timer.Begin("emit")
	switch format {
	case "pretty":
		err = planfmt.Pretty(os.Stdout, &result.Plan, result.FileSet, planfmt.PrettyOpts{
			Color:        colored,
			ShowSwitches: showSwitches,
			PathMode:     pathMode,
		})
	case "json":
		err = planfmt.JSON(os.Stdout, &result.Plan, result.FileSet, planfmt.JSONOpts{
			IncludeLines: withLines,
			PathMode:     pathMode,
		})
	case "flags":
		err = planfmt.Flags(os.Stdout, &result.Plan, result.FileSet, planfmt.FlagsOpts{
			DefinePrefix: definePrefix,
			PathMode:     pathMode,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to emit plan: %w", err)
	}
	timer.End(phase, format)

	if showTimings && !quiet {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if result.HasFatal() {
		// Diagnostics already printed, suppress cobra usage output.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
