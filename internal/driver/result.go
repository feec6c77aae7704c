// Package driver orchestrates a whole scan run: file discovery,
// parallel directive scanning with the disk cache, per-file plan
// resolution, and run-level override validation.
package driver

import (
	"srcdep/internal/diag"
	"srcdep/internal/directive"
	"srcdep/internal/plan"
	"srcdep/internal/source"
)

// Options configures one run.
type Options struct {
	// Marker overrides the directive comment prefix. Empty means the
	// scanner default.
	Marker string
	// Include holds the glob patterns matched against file basenames
	// when the target is a directory. Empty means every file.
	Include []string
	// Overrides are the external switch values (manifest merged with
	// command-line flags).
	Overrides map[string]bool
	// MaxDiagnostics bounds every per-file bag.
	MaxDiagnostics int
	// Jobs limits scan parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache is the optional scan cache. Nil disables caching.
	Cache *DiskCache
}

// FileResult is the directive scan outcome for one file.
type FileResult struct {
	Path       string
	FileID     source.FileID
	Directives []directive.Directive
	Bag        *diag.Bag
	// FromCache marks a scan served from the disk cache.
	FromCache bool
}

// Result is the outcome of a full plan run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Plan    plan.Plan
	// Bag holds every diagnostic of the run, merged and sorted.
	Bag *diag.Bag
}

// HasFatal reports whether any diagnostic aborted a file's plan.
func (r *Result) HasFatal() bool {
	return r.Bag.HasFatal()
}
