package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"srcdep/internal/diagfmt"
	"srcdep/internal/directive"
	"srcdep/internal/driver"
)

var directivesCmd = &cobra.Command{
	Use:   "directives [flags] <file|directory>",
	Short: "List every directive found in the target, before resolution",
	Args:  cobra.ExactArgs(1),
	RunE:  runDirectives,
}

func init() {
	directivesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	directivesCmd.Flags().String("marker", "", "directive comment marker (default ///)")
	directivesCmd.Flags().Int("jobs", 0, "max parallel workers for directory scanning (0=auto)")
	directivesCmd.Flags().Bool("no-cache", false, "disable the persistent scan cache")
	directivesCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// directiveJSON is one raw directive in json output.
type directiveJSON struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Default *bool  `json:"default,omitempty"`
	Guard   string `json:"guard,omitempty"`
	Line    uint32 `json:"line"`
}

func runDirectives(cmd *cobra.Command, args []string) error {
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

	fileSet, results, err := driver.Scan(cmd.Context(), target, opts)
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

	hadErrors := false
	for _, r := range results {
		if r.Bag.HasErrors() {
			hadErrors = true
		}
		if r.Bag.Len() > 0 && !quiet {
			prettyOpts := diagfmt.PrettyOpts{Color: colored, Context: true, PathMode: pathMode}
			if err := diagfmt.Pretty(os.Stderr, r.Bag, fileSet, prettyOpts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	}

	switch format {
	case "pretty":
		for _, r := range results {
			if len(r.Directives) == 0 {
				continue
			}
			path := fileSet.Get(r.FileID).FormatPath(pathMode, fileSet.BaseDir())
			fmt.Fprintf(os.Stdout, "%s\n", path)
			for _, d := range r.Directives {
				line, _ := fileSet.Resolve(d.Span)
				fmt.Fprintf(os.Stdout, "  %4d  ", line.Line)
				if d.Guarded() {
					fmt.Fprintf(os.Stdout, "{%s} ", d.Guard)
				}
				fmt.Fprintf(os.Stdout, "%s %s", d.Kind, d.Name)
				if d.Kind == directive.KindSwitchDecl {
					fmt.Fprintf(os.Stdout, " %s", boolToken(d.Default))
				}
				fmt.Fprintln(os.Stdout)
			}
		}
	case "json":
		output := make(map[string][]directiveJSON, len(results))
		for _, r := range results {
			path := r.Path
			if id, ok := fileSet.GetLatest(r.Path); ok {
				path = fileSet.Get(id).FormatPath(pathMode, fileSet.BaseDir())
			}
			items := make([]directiveJSON, 0, len(r.Directives))
			for _, d := range r.Directives {
				line, _ := fileSet.Resolve(d.Span)
				dj := directiveJSON{
					Kind:  d.Kind.String(),
					Name:  d.Name,
					Guard: d.Guard,
					Line:  line.Line,
				}
				if d.Kind == directive.KindSwitchDecl {
					def := d.Default
					dj.Default = &def
				}
				items = append(items, dj)
			}
			output[path] = items
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode directives: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hadErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func boolToken(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
