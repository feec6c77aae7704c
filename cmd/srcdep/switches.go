package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"srcdep/internal/diagfmt"
	"srcdep/internal/driver"
	"srcdep/internal/switchset"
)

var switchesCmd = &cobra.Command{
	Use:   "switches [flags] <file|directory>",
	Short: "List declared switches and their resolved values",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwitches,
}

func init() {
	switchesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	switchesCmd.Flags().StringArray("switch", nil, "switch override NAME=0|1 (repeatable)")
	switchesCmd.Flags().String("marker", "", "directive comment marker (default ///)")
	switchesCmd.Flags().Int("jobs", 0, "max parallel workers for directory scanning (0=auto)")
	switchesCmd.Flags().Bool("no-cache", false, "disable the persistent scan cache")
	switchesCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// switchJSON is one resolved switch in json output.
type switchJSON struct {
	Name   string `json:"name"`
	Value  bool   `json:"value"`
	Origin string `json:"origin"`
}

// runSwitches runs the plan pipeline and prints only the per-file
// switch tables.
func runSwitches(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts, err := buildScanOptions(cmd, target)
	if err != nil {
		return err
	}

	result, err := driver.Plan(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := "relative"
	if fullPath {
		pathMode = "absolute"
	}

	if result.Bag.Len() > 0 && !quiet {
		prettyOpts := diagfmt.PrettyOpts{Color: colored, Context: true, PathMode: pathMode}
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	switch format {
	case "pretty":
		for i := range result.Plan.Files {
			fp := &result.Plan.Files[i]
			if len(fp.Switches) == 0 {
				continue
			}
			path := result.FileSet.Get(fp.File).FormatPath(pathMode, result.FileSet.BaseDir())
			fmt.Fprintf(os.Stdout, "%s\n", path)
			for _, sw := range fp.Switches {
				fmt.Fprintf(os.Stdout, "  %s = %s (%s)\n", sw.Name, onOff(sw), sw.Origin)
			}
		}
	case "json":
		output := make(map[string][]switchJSON, len(result.Plan.Files))
		for i := range result.Plan.Files {
			fp := &result.Plan.Files[i]
			path := result.FileSet.Get(fp.File).FormatPath(pathMode, result.FileSet.BaseDir())
			items := make([]switchJSON, 0, len(fp.Switches))
			for _, sw := range fp.Switches {
				items = append(items, switchJSON{
					Name:   sw.Name,
					Value:  sw.Value,
					Origin: sw.Origin.String(),
				})
			}
			output[path] = items
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode switches: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.HasFatal() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func onOff(sw switchset.Value) string {
	if sw.Value {
		return "on"
	}
	return "off"
}
