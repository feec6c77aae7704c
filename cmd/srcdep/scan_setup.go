package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"srcdep/internal/driver"
	"srcdep/internal/project"
	"srcdep/internal/switchset"
)

// buildScanOptions assembles driver.Options for target from the
// manifest (if any) and the command flags. Flags win over the manifest:
// --marker replaces the configured marker and --switch values override
// the [switches] table entry by entry.
func buildScanOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	var opts driver.Options

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts.MaxDiagnostics = maxDiagnostics

	manifest, _, err := project.Load(manifestStartDir(target))
	if err != nil {
		return opts, err
	}
	opts.Marker = manifest.Marker()
	opts.Include = manifest.Include()

	if f := cmd.Flags().Lookup("marker"); f != nil && f.Changed {
		opts.Marker = f.Value.String()
	}

	overrides := make(map[string]bool)
	for name, value := range manifest.Overrides() {
		overrides[name] = value
	}
	if cmd.Flags().Lookup("switch") != nil {
		args, err := cmd.Flags().GetStringArray("switch")
		if err != nil {
			return opts, fmt.Errorf("failed to get switch flag: %w", err)
		}
		if _, err := switchset.ParseOverrides(args, overrides); err != nil {
			return opts, err
		}
	}
	opts.Overrides = overrides

	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}

	if cmd.Flags().Lookup("no-cache") != nil {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		if !noCache {
			cache, err := driver.OpenDiskCache("srcdep")
			if err == nil {
				opts.Cache = cache
			}
			// A broken cache dir degrades to uncached scanning.
		}
	}

	return opts, nil
}

// manifestStartDir picks where the manifest walk starts: the target
// directory itself, or the parent of a file target.
func manifestStartDir(target string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}
